package models

import (
	"reflect"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// PostIdentityLength number of hex characters in a post identity (256 bits)
const PostIdentityLength = 64

// PrincipalIDLength number of hex characters in a principal ID (ed25519 public key)
const PrincipalIDLength = 64

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	customs := map[string]validator.Func{
		"enc_key_state":     validateEncKeyStateType,
		"system_event_type": validateSystemEventType,
		"post_identity":     validatePostIdentity,
		"principal_id":      validatePrincipalID,
		"post_topic":        validatePostTopic,
		"post_content":      validatePostContent,
	}
	for tag, fn := range customs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

/*
TextError the caller facing error for a topic or content which fails validation, or nil
when both are acceptable. Topic length is checked first, then content length, then
content emptiness, then text encoding.

	@param topic string - post topic
	@param content string - post content
	@returns the error kind the text violates
*/
func TextError(topic, content string) error {
	if CharCount(topic) > MaxTopicLength {
		return ErrTopicTooLong
	}
	contentLen := CharCount(content)
	if contentLen > MaxContentLength {
		return ErrContentTooLong
	}
	if contentLen < MinContentLength {
		return ErrContentEmpty
	}
	if !utf8.ValidString(topic) || !utf8.ValidString(content) {
		return ErrInvalidText
	}
	return nil
}

// CharCount number of characters, as Unicode code points, in a string
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// IsLowerHex check the string is made of only lowercase hex characters, and is of
// the expected length
func IsLowerHex(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, c := range []byte(s) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsValidPostIdentity check whether the string is a well formed post identity
func IsValidPostIdentity(s string) bool {
	return IsLowerHex(s, PostIdentityLength)
}

func validateEncKeyStateType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch EncryptionKeyStateENUMType(fl.Field().String()) {
	case EncryptionKeyStateActive:
		fallthrough
	case EncryptionKeyStateInactive:
		return true
	}
	return false
}

func validateSystemEventType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch SystemEventTypeENUMType(fl.Field().String()) {
	case SystemEventTypeNewEncryptionKey:
		fallthrough
	case SystemEventTypeAddNewPost:
		return true
	}
	return false
}

func validatePostIdentity(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return IsValidPostIdentity(fl.Field().String())
}

func validatePrincipalID(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return IsLowerHex(fl.Field().String(), PrincipalIDLength)
}

func validatePostTopic(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	topic := fl.Field().String()
	return utf8.ValidString(topic) && CharCount(topic) <= MaxTopicLength
}

func validatePostContent(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	content := fl.Field().String()
	count := CharCount(content)
	return utf8.ValidString(content) && count >= MinContentLength && count <= MaxContentLength
}
