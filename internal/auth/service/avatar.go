package service

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// Avatars turns an email into a profile picture URL.
type Avatars interface {
	URL(email string) string
}

// Gravatar builds gravatar.com URLs: a 200px, PG rated image with the
// "mystery man" fallback for addresses gravatar does not know.
type Gravatar struct {
	BaseURL string // defaults to https://www.gravatar.com/avatar/
	Size    string
	Rating  string
	Default string
}

// DefaultGravatar returns the s=200, r=pg, d=mm configuration.
func DefaultGravatar() Gravatar {
	return Gravatar{
		BaseURL: "https://www.gravatar.com/avatar/",
		Size:    "200",
		Rating:  "pg",
		Default: "mm",
	}
}

func (g Gravatar) URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	base := g.BaseURL
	if base == "" {
		base = "https://www.gravatar.com/avatar/"
	}

	q := url.Values{}
	if g.Size != "" {
		q.Set("s", g.Size)
	}
	if g.Rating != "" {
		q.Set("r", g.Rating)
	}
	if g.Default != "" {
		q.Set("d", g.Default)
	}

	u := base + hex.EncodeToString(sum[:])
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
