package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemSource identifies the pool a vocabulary item belongs to.
type ItemSource string

// Possible item source values
const (
	// SourceCurriculum marks items authored centrally and shared by all users.
	SourceCurriculum ItemSource = "curriculum"

	// SourcePersonal marks items a user added to their own collection.
	SourcePersonal ItemSource = "personal"
)

// Scope selects which item pools participate in a due-set query.
type Scope string

// Possible scope values
const (
	ScopeCurriculum Scope = "curriculum"
	ScopePersonal   Scope = "personal"
	ScopeBoth       Scope = "both"
)

// IsValid reports whether the scope is one of the known values.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeCurriculum, ScopePersonal, ScopeBoth:
		return true
	default:
		return false
	}
}

// Includes reports whether items from the given source are in scope.
func (s Scope) Includes(src ItemSource) bool {
	switch s {
	case ScopeBoth:
		return true
	case ScopeCurriculum:
		return src == SourceCurriculum
	case ScopePersonal:
		return src == SourcePersonal
	default:
		return false
	}
}

// Common validation errors for items
var (
	ErrEmptyItemID          = errors.New("item ID cannot be empty")
	ErrEmptyItemTarget      = errors.New("item target text cannot be empty")
	ErrEmptyItemTranslation = errors.New("item translation cannot be empty")
	ErrEmptyItemTopic       = errors.New("curriculum item topic ID cannot be empty")
	ErrEmptyItemOwner       = errors.New("personal item owner ID cannot be empty")
	ErrMalformedItemRef     = errors.New("malformed item ref")
)

// ItemRef is a pool-qualified item identifier of the form "source:uuid".
// Due sets merge items from independent pools, so bare UUIDs are not unique
// keys; the ref is.
type ItemRef string

// NewItemRef builds the pool-qualified ref for a source and item ID.
func NewItemRef(src ItemSource, id uuid.UUID) ItemRef {
	return ItemRef(fmt.Sprintf("%s:%s", src, id))
}

// ParseItemRef splits a ref back into its source and item ID.
// Returns ErrMalformedItemRef if the ref is not of the form "source:uuid"
// with a known source.
func ParseItemRef(ref ItemRef) (ItemSource, uuid.UUID, error) {
	src, rawID, ok := strings.Cut(string(ref), ":")
	if !ok {
		return "", uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedItemRef, ref)
	}

	source := ItemSource(src)
	if source != SourceCurriculum && source != SourcePersonal {
		return "", uuid.Nil, fmt.Errorf("%w: unknown source %q", ErrMalformedItemRef, src)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("%w: %v", ErrMalformedItemRef, err)
	}

	return source, id, nil
}

// ItemCore holds the fields shared by every vocabulary item regardless of
// pool. Items are authored externally and treated as immutable here.
type ItemCore struct {
	ID                 uuid.UUID `json:"id"`
	Target             string    `json:"target"`              // Word or phrase in the target language
	Translation        string    `json:"translation"`         // Meaning in the user's language
	ExampleSentence    string    `json:"example_sentence"`    // Optional sentence using the target
	ExampleTranslation string    `json:"example_translation"` // Translation of the example sentence
	AudioRef           string    `json:"audio_ref"`           // Opaque reference to target audio, if any
	ExampleAudioRef    string    `json:"example_audio_ref"`   // Opaque reference to sentence audio, if any
}

// HasSentencePair reports whether the item carries a usable example sentence
// together with its translation. Exercise selection branches on this.
func (c *ItemCore) HasSentencePair() bool {
	return c.ExampleSentence != "" && c.ExampleTranslation != ""
}

// validate checks the fields every item must carry.
func (c *ItemCore) validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyItemID
	}
	if c.Target == "" {
		return ErrEmptyItemTarget
	}
	if c.Translation == "" {
		return ErrEmptyItemTranslation
	}
	return nil
}

// Item is the closed union of CurriculumItem and PersonalItem. Each pool's
// item type carries its own statically guaranteed fields; code that only
// needs the shared text fields works through Core().
type Item interface {
	// Core returns the shared text and media fields.
	Core() *ItemCore

	// Source identifies the pool the item belongs to.
	Source() ItemSource

	// Ref returns the pool-qualified identifier.
	Ref() ItemRef

	// Validate checks the item's invariants.
	Validate() error
}

// CurriculumItem is a centrally authored item. It always belongs to a topic,
// which the distractor engine uses as the restricted pool.
type CurriculumItem struct {
	ItemCore
	TopicID uuid.UUID `json:"topic_id"`
}

// Ensure both item kinds satisfy the Item union at compile time
var (
	_ Item = (*CurriculumItem)(nil)
	_ Item = (*PersonalItem)(nil)
)

// Core implements Item.Core.
func (i *CurriculumItem) Core() *ItemCore { return &i.ItemCore }

// Source implements Item.Source.
func (i *CurriculumItem) Source() ItemSource { return SourceCurriculum }

// Ref implements Item.Ref.
func (i *CurriculumItem) Ref() ItemRef { return NewItemRef(SourceCurriculum, i.ID) }

// Validate implements Item.Validate.
func (i *CurriculumItem) Validate() error {
	if err := i.ItemCore.validate(); err != nil {
		return err
	}
	if i.TopicID == uuid.Nil {
		return ErrEmptyItemTopic
	}
	return nil
}

// PersonalItem is an item a user added to their own collection.
type PersonalItem struct {
	ItemCore
	OwnerID uuid.UUID `json:"owner_id"`
}

// Core implements Item.Core.
func (i *PersonalItem) Core() *ItemCore { return &i.ItemCore }

// Source implements Item.Source.
func (i *PersonalItem) Source() ItemSource { return SourcePersonal }

// Ref implements Item.Ref.
func (i *PersonalItem) Ref() ItemRef { return NewItemRef(SourcePersonal, i.ID) }

// Validate implements Item.Validate.
func (i *PersonalItem) Validate() error {
	if err := i.ItemCore.validate(); err != nil {
		return err
	}
	if i.OwnerID == uuid.Nil {
		return ErrEmptyItemOwner
	}
	return nil
}
