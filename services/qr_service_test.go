package services

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base64urlPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerateToken(t *testing.T) {
	svc := NewQrService()
	meetUid := "0b815cde-7f7a-4b5c-8f4e-1f2a3b4c5d6e"

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := svc.GenerateToken(meetUid)
		assert.NotEmpty(t, token)
		assert.LessOrEqual(t, len(token), 160)
		assert.True(t, base64urlPattern.MatchString(token), "token URL-safe olmalı: %s", token)
		assert.False(t, seen[token], "token'lar tekil olmalı")
		seen[token] = true
	}
}

func TestGeneratePNG(t *testing.T) {
	svc := NewQrService()

	png, err := svc.GeneratePNG("herhangi-bir-token", 128)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG imzası: \x89PNG
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))

	_, err = svc.GeneratePNG("", 128)
	require.Error(t, err)

	_, err = svc.GeneratePNG("veri", 0)
	require.Error(t, err)
}
