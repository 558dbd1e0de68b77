// Package validate gates request payloads before they reach the store.
// Field sets are closed: unknown fields are rejected, and the first violated
// constraint is reported.
package validate

import (
	"fmt"
	"regexp"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9]{3,25}$`)

type strRule struct {
	name     string
	min      int
	max      int
	pattern  *regexp.Regexp
	required bool
}

func (r strRule) check(m map[string]any) error {
	v, ok := m[r.name]
	if !ok {
		if r.required {
			return fmt.Errorf("missing field %q", r.name)
		}

		return nil
	}

	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("field %q must be a string", r.name)
	}

	if r.pattern != nil && !r.pattern.MatchString(s) {
		return fmt.Errorf("field %q does not match pattern %s", r.name, r.pattern)
	}

	if r.min > 0 && len(s) < r.min {
		return fmt.Errorf("field %q is shorter than %d characters", r.name, r.min)
	}

	if r.max > 0 && len(s) > r.max {
		return fmt.Errorf("field %q is longer than %d characters", r.name, r.max)
	}

	return nil
}

func checkFields(m map[string]any, allowed ...string) error {
	for k := range m {
		found := false

		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("unknown field %q", k)
		}
	}

	return nil
}

// User validates a user-creation payload. At least one of username and
// pryvUsername must be present.
func User(m map[string]any) error {
	if err := checkFields(m, "username", "password", "pryvUsername", "pryvToken"); err != nil {
		return err
	}

	for _, r := range []strRule{
		{name: "username", pattern: usernameRe},
		{name: "password", min: 5, max: 24},
		{name: "pryvUsername", min: 5, max: 24},
		{name: "pryvToken", min: 10, max: 30},
	} {
		if err := r.check(m); err != nil {
			return err
		}
	}

	if _, ok := m["username"]; !ok {
		if _, ok := m["pryvUsername"]; !ok {
			return fmt.Errorf("one of username or pryvUsername is required")
		}
	}

	return nil
}

// Auth validates a sign-in payload.
func Auth(m map[string]any) error {
	if err := checkFields(m, "username", "password"); err != nil {
		return err
	}

	for _, r := range []strRule{
		{name: "username", required: true, pattern: usernameRe},
		{name: "password", required: true, min: 5, max: 24},
	} {
		if err := r.check(m); err != nil {
			return err
		}
	}

	return nil
}

// Link validates an account-link payload.
func Link(m map[string]any) error {
	if err := checkFields(m, "pryvUsername", "pryvToken"); err != nil {
		return err
	}

	for _, r := range []strRule{
		{name: "pryvUsername", required: true, min: 5, max: 24},
		{name: "pryvToken", required: true, min: 10, max: 30},
	} {
		if err := r.check(m); err != nil {
			return err
		}
	}

	return nil
}

// Campaign validates a campaign-creation payload.
func Campaign(m map[string]any) error {
	if err := checkFields(m, "title", "pryvAppId", "description", "permissions"); err != nil {
		return err
	}

	for _, r := range []strRule{
		{name: "title", required: true, min: 1, max: 100},
		{name: "pryvAppId", required: true, min: 1, max: 100},
		{name: "description", required: true, min: 1, max: 500},
	} {
		if err := r.check(m); err != nil {
			return err
		}
	}

	perms, ok := m["permissions"]
	if !ok {
		return fmt.Errorf("missing field %q", "permissions")
	}

	list, ok := perms.([]any)
	if !ok || len(list) == 0 {
		return fmt.Errorf("field %q must be a non-empty list", "permissions")
	}

	for _, p := range list {
		pm, ok := p.(map[string]any)
		if !ok {
			return fmt.Errorf("permissions must be objects")
		}

		if err := checkFields(pm, "streamId", "level", "defaultName"); err != nil {
			return err
		}

		for _, r := range []strRule{
			{name: "streamId", required: true, min: 1},
			{name: "level", required: true, min: 1},
			{name: "defaultName", required: true, min: 1},
		} {
			if err := r.check(pm); err != nil {
				return err
			}
		}
	}

	return nil
}

// Invitation validates an invitation-creation payload. The requestee may be
// given by username or by pryvUsername.
func Invitation(m map[string]any) error {
	if err := checkFields(m, "campaign", "requester", "requestee"); err != nil {
		return err
	}

	campaign, ok := m["campaign"].(map[string]any)
	if !ok {
		return fmt.Errorf("field %q must be an object", "campaign")
	}

	if err := checkFields(campaign, "id"); err != nil {
		return err
	}

	if err := (strRule{name: "id", required: true, min: 1}).check(campaign); err != nil {
		return err
	}

	requester, ok := m["requester"].(map[string]any)
	if !ok {
		return fmt.Errorf("field %q must be an object", "requester")
	}

	if err := checkFields(requester, "username"); err != nil {
		return err
	}

	if err := (strRule{name: "username", required: true, min: 1}).check(requester); err != nil {
		return err
	}

	requestee, ok := m["requestee"].(map[string]any)
	if !ok {
		return fmt.Errorf("field %q must be an object", "requestee")
	}

	if err := checkFields(requestee, "username", "pryvUsername"); err != nil {
		return err
	}

	if _, ok := requestee["username"]; !ok {
		if _, ok := requestee["pryvUsername"]; !ok {
			return fmt.Errorf("requestee needs a username or pryvUsername")
		}
	}

	return nil
}

// InvitationUpdate validates a status-change payload.
func InvitationUpdate(m map[string]any) error {
	if err := checkFields(m, "id", "status"); err != nil {
		return err
	}

	for _, r := range []strRule{
		{name: "id", required: true, min: 1},
		{name: "status", required: true, min: 1},
	} {
		if err := r.check(m); err != nil {
			return err
		}
	}

	return nil
}
