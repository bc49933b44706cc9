package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskLeadSync pushes one locally minted lead to the pipeline store.
const TaskLeadSync = "pipeline.lead_sync"

// TaskDailyBrief builds and emails the morning brief.
const TaskDailyBrief = "brief.daily"

// TaskSyncSweep pushes every remaining local lead to the pipeline store,
// catching anything a per-lead sync missed.
const TaskSyncSweep = "pipeline.sync_sweep"

type LeadSyncPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadSyncTask(payload LeadSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadSync, data, asynq.MaxRetry(5)), nil
}

func ParseLeadSyncPayload(task *asynq.Task) (LeadSyncPayload, error) {
	var payload LeadSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadSyncPayload{}, err
	}
	return payload, nil
}

func NewDailyBriefTask() *asynq.Task {
	return asynq.NewTask(TaskDailyBrief, nil)
}

func NewSyncSweepTask() *asynq.Task {
	return asynq.NewTask(TaskSyncSweep, nil)
}
