/*
   Copyright 2024 The Strata Authors

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

package core

import "errors"

// Error kinds used across the pipeline. Policies:
//
//   - ErrRpc is retried with bounded exponential backoff at the point of call
//     and only propagates once retries are exhausted.
//   - ErrIo propagates; a snapshot is never published over it.
//   - ErrFatal terminates the pipeline.
//   - ErrProtocol drops the offending subscriber without affecting others.
//   - Cancellation is context.Canceled and is not an error for exit purposes.
var (
	ErrFatal    = errors.New("fatal")
	ErrIo       = errors.New("storage failure")
	ErrRpc      = errors.New("rpc failure")
	ErrProtocol = errors.New("protocol violation")
)

// IsFatal reports whether err terminates the whole pipeline rather than a
// single operation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}
