/*
Copyright 2026 The Strata Authors.

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

package builderrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/builderrors"
)

func TestIoErrorUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := &builderrors.IoError{Asset: "wall.tif", Err: cause}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "wall.tif")
}

func TestErrorMessagesNameTheirAsset(t *testing.T) {
	cases := []error{
		&builderrors.ConfigError{Asset: "wall.bitmap", Reason: "bad enum"},
		&builderrors.FormatError{Asset: "wall.bitmap", Reason: "bad magic"},
		&builderrors.OutOfBoundsError{Asset: "wall.bitmap", Offset: 4, Length: 8, Bound: 10},
		&builderrors.EncodeError{Asset: "wall.bitmap", Reason: "too large"},
	}
	for _, err := range cases {
		require.Contains(t, err.Error(), "wall.bitmap")
	}
}
