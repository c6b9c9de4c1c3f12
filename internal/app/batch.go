package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/okian/fairwage/internal/domain/model"
)

// ErrInvalidRequest is returned for a batch request that fails validation.
var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Process runs one batch job. It satisfies the worker pool's Processor.
func (s *Service) Process(ctx context.Context, j model.Job) (any, error) {
	switch j.Kind {
	case model.JobImpact:
		var req ImpactRequest
		if err := decodeJob(j, &req); err != nil {
			return nil, err
		}
		return s.Impact(ctx, req)
	case model.JobWorth:
		var req WorthRequest
		if err := decodeJob(j, &req); err != nil {
			return nil, err
		}
		return s.Worth(ctx, req)
	case model.JobNegotiation:
		var req NegotiationRequest
		if err := decodeJob(j, &req); err != nil {
			return nil, err
		}
		return s.Negotiation(ctx, req)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownJobKind, j.Kind)
}

func decodeJob(j model.Job, v any) error {
	dec := json.NewDecoder(bytes.NewReader(j.Request))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: job %d: %v", ErrInvalidRequest, j.Seq, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: job %d: %v", ErrInvalidRequest, j.Seq, err)
	}
	return nil
}
