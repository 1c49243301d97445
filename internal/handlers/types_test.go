package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "plain ascii", username: "anagomez", want: true},
		{name: "digits allowed", username: "player99", want: true},
		{name: "too short", username: "ana", want: false},
		{name: "too long", username: "abcdefghijklmnopqrstu", want: false},
		{name: "punctuation rejected", username: "ana.gomez", want: false},
		{name: "space rejected", username: "ana gomez", want: false},
		// Three multibyte letters are six bytes but still three characters.
		{name: "multibyte below minimum", username: "ñññ", want: false},
		{name: "multibyte at minimum", username: "ñuñoñu", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validUsername(tt.username))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "letters and digits", password: "secret1", want: true},
		{name: "too short", password: "abc12", want: false},
		{name: "letters only", password: "abcdef", want: false},
		{name: "digits only", password: "123456", want: false},
		{name: "multibyte counts characters not bytes", password: "ñññ1ñ", want: false},
		{name: "multibyte long enough", password: "ñññññ1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validPassword(tt.password))
		})
	}
}
