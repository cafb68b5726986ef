package model

import (
	"fmt"
	"strings"
)

// Profile is the authenticated user as returned by /api/profile/.
type Profile struct {
	Email             string          `json:"email,omitempty"`
	FirstName         string          `json:"first_name,omitempty"`
	LastName          string          `json:"last_name,omitempty"`
	Password          *string         `json:"password,omitempty"`
	AuthToken         string          `json:"auth_token"`
	HasUsablePassword bool            `json:"has_usable_password"`
	IsMFAEnabled      bool            `json:"is_mfa_enabled"`
	SocialAccounts    []SocialAccount `json:"social_accounts"`
}

// SocialAccount is a linked third-party login.
type SocialAccount struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Sanitize drops the masked password the service echoes back.
func (p Profile) Sanitize() Profile {
	p.Password = nil
	if p.SocialAccounts == nil {
		p.SocialAccounts = []SocialAccount{}
	}
	return p
}

// ProfilePlain renders "First Last <email>".
func ProfilePlain(p Profile) string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	switch {
	case name == "" && p.Email == "":
		return ""
	case p.Email == "":
		return name
	case name == "":
		return fmt.Sprintf("<%s>", p.Email)
	}
	return fmt.Sprintf("%s <%s>", name, p.Email)
}

func bracketed(id int, name string, count *int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	line := fmt.Sprintf("[%d] %s", id, name)
	if count == nil {
		return line
	}
	noun := "documents"
	if *count == 1 {
		noun = "document"
	}
	return fmt.Sprintf("%s (%d %s)", line, *count, noun)
}
