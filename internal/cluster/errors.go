/*
Copyright 2025 The kedactl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cluster

import (
	"context"
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrorKind classifies a cluster failure into the small taxonomy callers
// branch on. Transport-level failures and exceeded timeouts both surface as
// Unavailable; everything structurally wrong with the request is Invalid.
type ErrorKind string

const (
	NotFound    ErrorKind = "NotFound"
	Conflict    ErrorKind = "Conflict"
	Forbidden   ErrorKind = "Forbidden"
	Unavailable ErrorKind = "Unavailable"
	Invalid     ErrorKind = "Invalid"
)

// Error is the uniform error returned by every Gateway operation. It names
// the object the operation touched so callers can report exactly what state
// the cluster was left in.
type Error struct {
	Kind       ErrorKind
	ObjectKind string
	Name       string
	Namespace  string
	Err        error
}

func (e *Error) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("%s: %s %s/%s: %v", e.Kind, e.ObjectKind, e.Namespace, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.ObjectKind, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the taxonomy kind of err, or "" if err is not a cluster Error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsNotFound reports whether err is a cluster Error of kind NotFound.
func IsNotFound(err error) bool { return KindOf(err) == NotFound }

// wrapError classifies err and attaches the object identity. Returns nil for
// a nil err so call sites can wrap unconditionally.
func wrapError(err error, objectKind, name, namespace string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       classify(err),
		ObjectKind: objectKind,
		Name:       name,
		Namespace:  namespace,
		Err:        err,
	}
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Unavailable
	case apierrors.IsNotFound(err):
		return NotFound
	case apierrors.IsConflict(err), apierrors.IsAlreadyExists(err):
		return Conflict
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return Forbidden
	case apierrors.IsInvalid(err), apierrors.IsBadRequest(err):
		return Invalid
	default:
		// Timeouts, connection refusals, and anything else transport-shaped.
		return Unavailable
	}
}
