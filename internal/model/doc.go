// Package model defines the value types shared across ytwav: download
// requests, retry profiles, outcomes with their failure classification, and
// playlist entities produced by playlist expansion.
package model
