package validation

import (
	"fmt"
	"strings"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxTranscriptLength = 50000

// Validator provides request validation functionality. Struct rules run
// through go-playground/validator; enum and id-format rules that need
// domain knowledge are explicit.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateAnalyzeSessionRequest validates the analyze-session request.
// user_level is deliberately not rejected when unrecognized: the level
// window selector falls back to the default level instead.
func (v *Validator) ValidateAnalyzeSessionRequest(req *dto.AnalyzeSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	}

	if strings.TrimSpace(req.UserID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	} else if !isValidUUID(req.UserID) {
		errors = append(errors, domain.NewInvalidFormatError("user_id", req.UserID))
	}

	if strings.TrimSpace(req.Transcript) == "" {
		errors = append(errors, domain.NewMissingFieldError("transcript"))
	} else if len(req.Transcript) > maxTranscriptLength {
		errors = append(errors, domain.NewOutOfRangeError("transcript", len(req.Transcript), 1, maxTranscriptLength))
	}

	return errors
}

// ValidateChatTextRequest validates the text-chat request.
func (v *Validator) ValidateChatTextRequest(req *dto.ChatTextRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	}

	for i, msg := range req.Context {
		if msg.Role != "user" && msg.Role != "assistant" {
			errors = append(errors, domain.NewInvalidFormatError(fmt.Sprintf("context[%d].role", i), msg.Role))
		}
	}

	return errors
}

// ValidateCreateUserRequest validates the admin create-user request.
func (v *Validator) ValidateCreateUserRequest(req *dto.CreateUserRequest) domain.ValidationErrors {
	return v.structErrors(req)
}

// ValidateResetPasswordRequest validates the admin password-reset request.
func (v *Validator) ValidateResetPasswordRequest(req *dto.ResetPasswordRequest) domain.ValidationErrors {
	return v.structErrors(req)
}

// ValidateUserID checks a user id path parameter.
func (v *Validator) ValidateUserID(userID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	} else if !isValidUUID(userID) {
		errors = append(errors, domain.NewInvalidFormatError("user_id", userID))
	}
	return errors
}

// ValidateCanDoID checks a descriptor id path parameter.
func (v *Validator) ValidateCanDoID(candoID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(candoID) == "" {
		errors = append(errors, domain.NewMissingFieldError("cando_id"))
	} else if !isValidUUID(candoID) {
		errors = append(errors, domain.NewInvalidFormatError("cando_id", candoID))
	}
	return errors
}

// structErrors runs go-playground/validator tags and converts field
// failures into domain validation errors.
func (v *Validator) structErrors(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	var errors domain.ValidationErrors
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errors = append(errors, domain.NewMissingFieldError(field))
		case "email":
			errors = append(errors, domain.NewInvalidFormatError(field, fe.Value()))
		case "min":
			errors = append(errors, domain.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %s characters", fe.Param()),
			})
		case "oneof":
			errors = append(errors, domain.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be one of: %s", fe.Param()),
				Value:   fe.Value(),
			})
		default:
			errors = append(errors, domain.ValidationError{Field: field, Message: "is invalid", Value: fe.Value()})
		}
	}
	return errors
}

// isValidUUID checks that the string is a canonical UUID; Supabase user
// and descriptor ids are UUIDs.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
