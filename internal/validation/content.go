package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	maxCaptionLength = 2200
	maxCommentLength = 1000
	maxMessageLength = 5000
	maxBioLength     = 500
)

// ValidateCaption checks post caption constraints. Captions may be empty.
func ValidateCaption(caption string) error {
	if len(caption) > maxCaptionLength {
		return fmt.Errorf("caption must not exceed %d characters", maxCaptionLength)
	}
	return nil
}

// ValidateCommentContent checks comment body constraints.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("comment must not exceed %d characters", maxCommentLength)
	}
	return nil
}

// ValidateMessageText checks direct message body constraints.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(text) > maxMessageLength {
		return fmt.Errorf("message must not exceed %d characters", maxMessageLength)
	}
	return nil
}

// ValidateBio checks profile bio constraints. Bios may be empty.
func ValidateBio(bio string) error {
	if len(bio) > maxBioLength {
		return fmt.Errorf("bio must not exceed %d characters", maxBioLength)
	}
	return nil
}

// ValidateWebsite checks that a profile website is an absolute http(s) URL.
// An empty website is allowed.
func ValidateWebsite(website string) error {
	if website == "" {
		return nil
	}
	u, err := url.Parse(website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("website must be a valid http or https URL")
	}
	return nil
}
