// Copyright 2025 ldx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("invalid JSON")
	ErrIO           = errors.New("I/O error")
	ErrKindMismatch = errors.New("cached payload kind mismatch")
	ErrNoInstall    = errors.New("no LDPlayer installation found")
	ErrInvalidPath  = errors.New("invalid path")
	ErrNotBatchable = errors.New("command does not support batch execution")
	ErrUnknownCmd   = errors.New("unknown console command")
)
