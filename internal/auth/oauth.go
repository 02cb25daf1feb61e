package auth

import (
	"fmt"

	"golang.org/x/oauth2"

	"trainer/internal/config"
	"trainer/internal/store"
)

// Strava OAuth endpoints
const (
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scope is the comma-separated Strava scope needed to read activities
const Scope = "read,activity:read_all"

// NewOAuthConfig builds the Strava OAuth config from app settings
func NewOAuthConfig(cfg config.StravaConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthURL,
			TokenURL:  TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: fmt.Sprintf("http://localhost:%d%s", CallbackPort, CallbackPath),
		Scopes:      []string{Scope},
	}
}

// ExtractAthleteID reads the athlete ID Strava puts in the token response
func ExtractAthleteID(token *oauth2.Token) int64 {
	if athlete, ok := token.Extra("athlete").(map[string]interface{}); ok {
		if id, ok := athlete["id"].(float64); ok {
			return int64(id)
		}
	}
	return 0
}

// TokenFromAuth converts stored credentials into an oauth2 token
func TokenFromAuth(a *store.Auth) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       a.ExpiresAt,
	}
}

// AuthFromToken converts a fresh token into storable credentials
func AuthFromToken(token *oauth2.Token, athleteID int64) *store.Auth {
	return &store.Auth{
		AthleteID:    athleteID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
}
