package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestItemRefRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution

	id := uuid.New()
	ref := NewItemRef(SourceCurriculum, id)

	src, parsedID, err := ParseItemRef(ref)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if src != SourceCurriculum {
		t.Errorf("Expected source %q, got %q", SourceCurriculum, src)
	}
	if parsedID != id {
		t.Errorf("Expected ID %s, got %s", id, parsedID)
	}
}

func TestItemRefDistinguishesPools(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// The same UUID in different pools must yield different refs.
	id := uuid.New()
	if NewItemRef(SourceCurriculum, id) == NewItemRef(SourcePersonal, id) {
		t.Error("Expected refs from different pools to differ")
	}
}

func TestParseItemRefMalformed(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name string
		ref  ItemRef
	}{
		{"no separator", ItemRef("curriculum")},
		{"unknown source", ItemRef("dictionary:" + uuid.New().String())},
		{"bad uuid", ItemRef("personal:not-a-uuid")},
		{"empty", ItemRef("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseItemRef(tc.ref)
			if !errors.Is(err, ErrMalformedItemRef) {
				t.Errorf("Expected ErrMalformedItemRef, got %v", err)
			}
		})
	}
}

func TestScopeIncludes(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		scope    Scope
		source   ItemSource
		expected bool
	}{
		{ScopeBoth, SourceCurriculum, true},
		{ScopeBoth, SourcePersonal, true},
		{ScopeCurriculum, SourceCurriculum, true},
		{ScopeCurriculum, SourcePersonal, false},
		{ScopePersonal, SourcePersonal, true},
		{ScopePersonal, SourceCurriculum, false},
		{Scope("everything"), SourceCurriculum, false},
	}

	for _, tc := range testCases {
		if got := tc.scope.Includes(tc.source); got != tc.expected {
			t.Errorf("Scope %q includes %q: expected %v, got %v",
				tc.scope, tc.source, tc.expected, got)
		}
	}
}

func TestCurriculumItemValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := CurriculumItem{
		ItemCore: ItemCore{
			ID:          uuid.New(),
			Target:      "la casa",
			Translation: "the house",
		},
		TopicID: uuid.New(),
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid item, got %v", err)
	}

	missingTopic := valid
	missingTopic.TopicID = uuid.Nil
	if err := missingTopic.Validate(); err != ErrEmptyItemTopic {
		t.Errorf("Expected ErrEmptyItemTopic, got %v", err)
	}

	missingTarget := valid
	missingTarget.Target = ""
	if err := missingTarget.Validate(); err != ErrEmptyItemTarget {
		t.Errorf("Expected ErrEmptyItemTarget, got %v", err)
	}
}

func TestPersonalItemValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := PersonalItem{
		ItemCore: ItemCore{
			ID:          uuid.New(),
			Target:      "el perro",
			Translation: "the dog",
		},
		OwnerID: uuid.New(),
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid item, got %v", err)
	}

	missingOwner := valid
	missingOwner.OwnerID = uuid.Nil
	if err := missingOwner.Validate(); err != ErrEmptyItemOwner {
		t.Errorf("Expected ErrEmptyItemOwner, got %v", err)
	}
}

func TestHasSentencePair(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name        string
		sentence    string
		translation string
		expected    bool
	}{
		{"both present", "El perro duerme.", "The dog sleeps.", true},
		{"sentence only", "El perro duerme.", "", false},
		{"translation only", "", "The dog sleeps.", false},
		{"neither", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core := ItemCore{
				ExampleSentence:    tc.sentence,
				ExampleTranslation: tc.translation,
			}
			if got := core.HasSentencePair(); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}
