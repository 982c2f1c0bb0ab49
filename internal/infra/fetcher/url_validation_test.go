package fetcher

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"https allowed", "https://feeds.example.com/rss.xml", nil},
		{"http allowed", "http://feeds.example.com/rss.xml", nil},
		{"file scheme rejected", "file:///etc/passwd", ErrInvalidURL},
		{"ftp scheme rejected", "ftp://example.com/feed", ErrInvalidURL},
		{"empty hostname", "https://", ErrInvalidURL},
		{"garbage", "://nope", ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url, false)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidateURL_DenyPrivateIPs(t *testing.T) {
	err := validateURL("http://127.0.0.1:8080/feed.xml", true)
	assert.True(t, errors.Is(err, ErrPrivateIP), "got %v", err)

	err = validateURL("http://localhost/feed.xml", true)
	assert.True(t, errors.Is(err, ErrPrivateIP), "got %v", err)
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.5", true},
		{"172.16.1.1", true},
		{"192.168.1.1", true},
		{"169.254.1.1", true},
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"2001:4860:4860::8888", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, isPrivateIP(net.ParseIP(tt.ip)))
		})
	}
}
