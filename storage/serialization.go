// Copyright 2025 Poiesic Systems
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


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/poiesic/arbor/core"
)

// MarshalID serializes an ID to big-endian bytes so keys sort numerically.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: id wants 8 bytes, got %d", ErrSerializationFailed, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalContent serializes a ConsolidatedContent to bytes.
func MarshalContent(content *core.ConsolidatedContent) ([]byte, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalContent deserializes a ConsolidatedContent from bytes.
func UnmarshalContent(data []byte) (*core.ConsolidatedContent, error) {
	var content core.ConsolidatedContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &content, nil
}

// MarshalForest serializes a Forest to bytes.
func MarshalForest(forest *core.Forest) ([]byte, error) {
	data, err := json.Marshal(forest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalForest deserializes a Forest from bytes.
func UnmarshalForest(data []byte) (*core.Forest, error) {
	var forest core.Forest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &forest, nil
}
