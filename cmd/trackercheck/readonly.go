package main

import (
	"context"

	"github.com/park285/chess-match-tracker/internal/store"
)

// readOnly drops writes so inspecting a store never changes it.
type readOnly struct{ store.Store }

func (readOnly) Put(context.Context, string, []byte) error { return nil }
