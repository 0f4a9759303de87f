package model

import (
	"encoding/json"
	"github.com/gofrs/uuid/v5"
	"github.com/jxskiss/base62"
)

// RequestId is a v4 uuid rendered in base62, which keeps it short enough for headers and logs.
type RequestId uuid.UUID

func NewRequestId() (RequestId, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return RequestId{}, err
	}

	return RequestId(u), nil
}

func (id RequestId) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RequestId) String() string {
	return base62.EncodeToString(id[:])
}

func (id *RequestId) FromString(s string) error {
	b, err := base62.DecodeString(s)
	if err != nil {
		return err
	}

	u, err := uuid.FromBytes(b)
	if err != nil {
		return err
	}

	*id = RequestId(u)
	return nil
}

func (id RequestId) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *RequestId) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	return id.FromString(s)
}
