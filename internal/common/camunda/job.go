package camunda

import (
	"context"
	"fmt"
	"strings"

	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables checks the job variables against schema and decodes them
// into out. Failures come back as INPUT_VALIDATION_FAILED.
func DecodeVariables(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	result := validation.ValidateJSON([]byte(job.GetVariables()), schema)
	if !result.Valid {
		return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("validationErrors", result.GetErrorMessages())
	}
	if err := job.GetVariablesAs(out); err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}

// CompleteJob completes job with output serialized as process variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
