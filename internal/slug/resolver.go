package slug

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxAttempts bounds the candidates tried by a Resolver when no
// explicit bound is configured.
const DefaultMaxAttempts = 100

var (
	// ErrSlugExhausted is matched by errors.Is when every candidate collided.
	ErrSlugExhausted = errors.New("no free slug within attempt limit")
	// ErrEmptySlug is returned when the title has no retainable characters.
	ErrEmptySlug = errors.New("title produces an empty slug")
)

// ExhaustedError reports the base slug and how many candidates were tried.
type ExhaustedError struct {
	Base     string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("slug %q: %d candidates taken", e.Base, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrSlugExhausted
}

// Checker reports whether a slug is already used by a record other than
// excludeID. An empty excludeID excludes nothing.
type Checker interface {
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
}

// Resolver turns titles into slugs that no other record uses.
//
// The check is advisory: two callers racing on the same title can both see a
// candidate as free. The store's unique constraint is the real guard and
// callers are expected to resolve again when a write reports a duplicate.
type Resolver struct {
	checker     Checker
	maxAttempts int
}

// NewResolver creates a Resolver. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewResolver(checker Checker, maxAttempts int) *Resolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{checker: checker, maxAttempts: maxAttempts}
}

// Resolve returns Slugify(title) when it is free, otherwise the first free
// "base-N" for N = 2, 3, ... Candidates are checked one at a time. A store
// error aborts immediately and is returned unchanged in the chain.
func (r *Resolver) Resolve(ctx context.Context, title, excludeID string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := base
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := r.checker.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt+1)
	}
	return "", &ExhaustedError{Base: base, Attempts: r.maxAttempts}
}
