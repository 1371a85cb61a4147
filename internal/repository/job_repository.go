package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// IntakeJobRepository stores pollable intake job records. Create refuses
// duplicate identifiers; Complete and Fail perform an atomic
// pending-to-terminal transition and refuse jobs that are already terminal,
// leaving the stored result/error untouched. Get is a pure read.
type IntakeJobRepository interface {
	Create(ctx context.Context, job *domain.IntakeJob) error
	Get(ctx context.Context, jobID string) (*domain.IntakeJob, error)
	Complete(ctx context.Context, jobID string, result *domain.IntakeResult) error
	Fail(ctx context.Context, jobID string, detail *domain.IntakeError) error
}

const jobKeyPrefix = "intake:job:"

// finalizeScript transitions a pending job to a terminal state atomically.
// Jobs are stored as hashes with the result/error payload kept as an opaque
// JSON string, so the script only compares and sets plain strings and the
// stored payload stays byte-for-byte what the Go side marshaled.
// ARGV[1] is the target status, ARGV[2] the payload field name, ARGV[3]
// the serialized payload.
var finalizeScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return 'missing'
end
if status ~= 'pending' then
  return 'terminal'
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], ARGV[2], ARGV[3])
return 'ok'
`)

type redisJobRepository struct {
	client *redis.Client
}

// NewRedisJobRepository builds a redis-backed job store. Records carry no
// TTL: retention is an external operational concern.
func NewRedisJobRepository(client *redis.Client) IntakeJobRepository {
	return &redisJobRepository{client: client}
}

func (r *redisJobRepository) Create(ctx context.Context, job *domain.IntakeJob) error {
	if job.Status == "" {
		job.Status = domain.JobPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	key := jobKeyPrefix + job.JobID
	set, err := r.client.HSetNX(ctx, key, "status", string(job.Status)).Result()
	if err != nil {
		return err
	}
	if !set {
		return util.NewConflict("intake job already exists", map[string]any{"job_id": job.JobID})
	}
	return r.client.HSet(ctx, key, "created_at", job.CreatedAt.Format(time.RFC3339Nano)).Err()
}

func (r *redisJobRepository) Get(ctx context.Context, jobID string) (*domain.IntakeJob, error) {
	fields, err := r.client.HGetAll(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, util.NewNotFound("intake job", map[string]any{"job_id": jobID})
	}
	return jobFromFields(jobID, fields)
}

func (r *redisJobRepository) Complete(ctx context.Context, jobID string, result *domain.IntakeResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.finalize(ctx, jobID, domain.JobCompleted, "result", payload)
}

func (r *redisJobRepository) Fail(ctx context.Context, jobID string, detail *domain.IntakeError) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return r.finalize(ctx, jobID, domain.JobError, "error", payload)
}

func (r *redisJobRepository) finalize(ctx context.Context, jobID string, status domain.IntakeJobStatus, field string, payload []byte) error {
	outcome, err := finalizeScript.Run(ctx, r.client, []string{jobKeyPrefix + jobID}, string(status), field, string(payload)).Text()
	if err != nil {
		return err
	}
	switch outcome {
	case "ok":
		return nil
	case "missing":
		return util.NewNotFound("intake job", map[string]any{"job_id": jobID})
	case "terminal":
		return util.NewConflict("intake job already finalized", map[string]any{"job_id": jobID})
	default:
		return util.NewInternalError(errors.New("unexpected finalize outcome: " + outcome))
	}
}

// jobFromFields rebuilds a job record from its hash fields.
func jobFromFields(jobID string, fields map[string]string) (*domain.IntakeJob, error) {
	job := &domain.IntakeJob{
		JobID:  jobID,
		Status: domain.IntakeJobStatus(fields["status"]),
	}
	if raw := fields["created_at"]; raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		job.CreatedAt = ts
	}
	if raw := fields["result"]; raw != "" {
		var result domain.IntakeResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, err
		}
		job.Result = &result
	}
	if raw := fields["error"]; raw != "" {
		var detail domain.IntakeError
		if err := json.Unmarshal([]byte(raw), &detail); err != nil {
			return nil, err
		}
		job.Error = &detail
	}
	return job, nil
}
