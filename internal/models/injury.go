// ABOUTME: Injury model with type, severity, and status enums.
// ABOUTME: Injuries are status-tracked independently of daily metrics.
package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInjury is wrapped by Injury validation and enum parsing failures.
var ErrInvalidInjury = errors.New("invalid injury")

// InjuryType classifies how an injury came about.
type InjuryType string

const (
	InjuryAcute   InjuryType = "acute"
	InjuryChronic InjuryType = "chronic"
	InjuryOveruse InjuryType = "overuse"
)

// AllInjuryTypes lists valid injury types.
var AllInjuryTypes = []InjuryType{InjuryAcute, InjuryChronic, InjuryOveruse}

// Severity grades an injury.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// AllSeverities lists valid severities.
var AllSeverities = []Severity{SeverityMinor, SeverityModerate, SeveritySevere}

// InjuryStatus is set by the athlete; it is not derived from the dates.
type InjuryStatus string

const (
	StatusActive     InjuryStatus = "active"
	StatusRecovering InjuryStatus = "recovering"
	StatusResolved   InjuryStatus = "resolved"
)

// AllInjuryStatuses lists valid statuses.
var AllInjuryStatuses = []InjuryStatus{StatusActive, StatusRecovering, StatusResolved}

// ParseInjuryType parses a case-insensitive injury type.
func ParseInjuryType(s string) (InjuryType, error) {
	return parseEnum(s, AllInjuryTypes, "type")
}

// ParseSeverity parses a case-insensitive severity.
func ParseSeverity(s string) (Severity, error) {
	return parseEnum(s, AllSeverities, "severity")
}

// ParseInjuryStatus parses a case-insensitive status.
func ParseInjuryStatus(s string) (InjuryStatus, error) {
	return parseEnum(s, AllInjuryStatuses, "status")
}

func parseEnum[T ~string](s string, valid []T, field string) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(valid, v) {
		return v, nil
	}
	names := make([]string, len(valid))
	for i, x := range valid {
		names[i] = string(x)
	}
	return "", fmt.Errorf("%w: unknown %s %q (valid: %s)", ErrInvalidInjury, field, s, strings.Join(names, ", "))
}

// IsOpen reports whether the status still counts as an ongoing injury.
func (s InjuryStatus) IsOpen() bool {
	return s == StatusActive || s == StatusRecovering
}

// Injury is an independent, status-tracked report of a physical injury.
type Injury struct {
	ID           uuid.UUID    `json:"id" yaml:"id"`
	Type         InjuryType   `json:"type" yaml:"type"`
	Severity     Severity     `json:"severity" yaml:"severity"`
	BodyPart     string       `json:"body_part" yaml:"body_part"`
	DateOccurred Date         `json:"date_occurred" yaml:"date_occurred"`
	DateResolved *Date        `json:"date_resolved,omitempty" yaml:"date_resolved,omitempty"`
	Status       InjuryStatus `json:"status" yaml:"status"`
	Description  string       `json:"description" yaml:"description"`
	Treatment    []string     `json:"treatment,omitempty" yaml:"treatment,omitempty"`
	Notes        *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`
}

// NewInjury creates an active injury occurring today. The ID is assigned by the tracker.
func NewInjury(injuryType InjuryType, severity Severity, bodyPart string) *Injury {
	return &Injury{
		Type:         injuryType,
		Severity:     severity,
		BodyPart:     bodyPart,
		DateOccurred: Today(),
		Status:       StatusActive,
	}
}

// WithDescription sets the description.
func (i *Injury) WithDescription(description string) *Injury {
	i.Description = description
	return i
}

// WithOccurred sets the date the injury happened.
func (i *Injury) WithOccurred(d Date) *Injury {
	i.DateOccurred = d
	return i
}

// WithTreatment appends treatment steps.
func (i *Injury) WithTreatment(steps ...string) *Injury {
	i.Treatment = append(i.Treatment, steps...)
	return i
}

// WithNotes sets notes on the injury.
func (i *Injury) WithNotes(notes string) *Injury {
	i.Notes = &notes
	return i
}

// Clone returns a deep copy.
func (i Injury) Clone() Injury {
	out := i
	out.DateResolved = clonePtr(i.DateResolved)
	out.Treatment = slices.Clone(i.Treatment)
	out.Notes = clonePtr(i.Notes)
	return out
}

// Validate checks enums, required fields and date ordering.
func (i *Injury) Validate() error {
	if !slices.Contains(AllInjuryTypes, i.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInjury, i.Type)
	}
	if !slices.Contains(AllSeverities, i.Severity) {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidInjury, i.Severity)
	}
	if !slices.Contains(AllInjuryStatuses, i.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInjury, i.Status)
	}
	if strings.TrimSpace(i.BodyPart) == "" {
		return fmt.Errorf("%w: body part is required", ErrInvalidInjury)
	}
	if !i.DateOccurred.Valid() {
		return fmt.Errorf("%w: date occurred %q is not YYYY-MM-DD", ErrInvalidInjury, i.DateOccurred)
	}
	if i.DateResolved != nil {
		if !i.DateResolved.Valid() {
			return fmt.Errorf("%w: date resolved %q is not YYYY-MM-DD", ErrInvalidInjury, *i.DateResolved)
		}
		if i.DateResolved.Before(i.DateOccurred) {
			return fmt.Errorf("%w: resolved %s before occurred %s", ErrInvalidInjury, *i.DateResolved, i.DateOccurred)
		}
	}
	return nil
}

// InjuryPatch is a partial update; nil fields are left unchanged.
type InjuryPatch struct {
	Type         *InjuryType   `json:"type,omitempty"`
	Severity     *Severity     `json:"severity,omitempty"`
	BodyPart     *string       `json:"body_part,omitempty"`
	DateOccurred *Date         `json:"date_occurred,omitempty"`
	DateResolved *Date         `json:"date_resolved,omitempty"`
	Status       *InjuryStatus `json:"status,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Treatment    []string      `json:"treatment,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
}

// Apply merges the patch into i. A non-nil Treatment replaces the list.
func (p InjuryPatch) Apply(i *Injury) {
	setIf(&i.Type, p.Type)
	setIf(&i.Severity, p.Severity)
	setIf(&i.BodyPart, p.BodyPart)
	setIf(&i.DateOccurred, p.DateOccurred)
	if p.DateResolved != nil {
		i.DateResolved = clonePtr(p.DateResolved)
	}
	setIf(&i.Status, p.Status)
	setIf(&i.Description, p.Description)
	if p.Treatment != nil {
		i.Treatment = slices.Clone(p.Treatment)
	}
	if p.Notes != nil {
		i.Notes = clonePtr(p.Notes)
	}
}
