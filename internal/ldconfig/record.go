package ldconfig

import (
	"context"
)

const recordExt = ".record"

// Operation record (.record) files: recorded macros of timed touch
// operations, replayed by the console's operaterecord command.

// RecordPoint is one touch point in a recorded operation.
type RecordPoint struct {
	ID    int  `json:"id"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
	State *int `json:"state,omitempty"`
}

// Operation is a single recorded input event.
type Operation struct {
	Timing      int           `json:"timing"`
	OperationID string        `json:"operationId"`
	Points      []RecordPoint `json:"points,omitempty"`
	Text        *string       `json:"text,omitempty"`
}

// RecordInfo is the macro's replay metadata.
type RecordInfo struct {
	LoopType          int    `json:"loopType"`
	LoopTimes         int    `json:"loopTimes"`
	CircleDuration    int    `json:"circleDuration"`
	LoopInterval      int    `json:"loopInterval"`
	LoopDuration      int    `json:"loopDuration"`
	AccelerateTimes   int    `json:"accelerateTimes"`
	AccelerateTimesEx int    `json:"accelerateTimesEx"`
	RecordName        string `json:"recordName"`
	CreateTime        string `json:"createTime"`
	PlayOnBoot        bool   `json:"playOnBoot"`
	RebootTiming      int    `json:"rebootTiming"`
}

// Record is one complete recorded macro.
type Record struct {
	RecordInfo RecordInfo  `json:"recordInfo"`
	Operations []Operation `json:"operations"`
}

// RecordFiles manages .record files in the operationRecords directory.
type RecordFiles struct {
	client *Client
}

// NewRecordFiles creates a record manager on the client.
func NewRecordFiles(c *Client) *RecordFiles {
	return &RecordFiles{client: c}
}

// List returns the .record file names in operationRecords.
func (f *RecordFiles) List() ([]string, error) {
	return listByExt(f.client.fs, f.client.attr.OperationRecords(), recordExt)
}

// Get loads a record by name, with or without the .record extension.
func (f *RecordFiles) Get(ctx context.Context, name string) (*Record, error) {
	var r Record
	path := joinName(f.client.attr.OperationRecords(), name, recordExt)
	if err := f.client.loadInto(ctx, path, KindRecord, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Dump writes a record by name. Bypasses the cache; the written path
// is invalidated.
func (f *RecordFiles) Dump(name string, r *Record) error {
	path := joinName(f.client.attr.OperationRecords(), name, recordExt)
	return f.client.dumpJSON(path, r)
}
