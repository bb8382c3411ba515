package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Meditate", DifficultyMedium, CategoryMandatory, false)
	addTask(t, svc, "Stretch", DifficultyTrivial, CategoryOptional, true)
	_, err := svc.CompleteTask(ctx, id)
	require.NoError(t, err)

	data, err := svc.ExportJSON(ctx)
	require.NoError(t, err)

	// Import into a fresh database.
	other := newTestService(t)
	require.NoError(t, other.Import(ctx, data))

	tasks, err := other.TaskRepo().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Meditate", tasks[0].Name)
	assert.Equal(t, string(CategoryMandatory), tasks[0].Category)

	n, err := other.CompletionRepo().CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := other.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, p.TotalPoints)

	// Settings round-trip losslessly even though the engine ignores them.
	reExported, err := other.Export(ctx)
	require.NoError(t, err)
	var original Snapshot
	require.NoError(t, json.Unmarshal(data, &original))
	assert.Equal(t, original.UserData.Settings, reExported.UserData.Settings)
}

func TestImportMissingUserDataRejectedAtomically(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addTask(t, svc, "Meditate", DifficultyMedium, CategoryMandatory, false)
	_, err := svc.CompleteTask(ctx, id)
	require.NoError(t, err)

	before, err := svc.ExportJSON(ctx)
	require.NoError(t, err)

	// Syntactically valid JSON, shape-invalid document.
	doc := `{"tasks": [], "completions": []}`
	err = svc.Import(ctx, []byte(doc))
	var formatErr SnapshotFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "userData")

	after, err := svc.ExportJSON(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, stripExportedAt(t, before), stripExportedAt(t, after),
		"state must be untouched after a rejected import")
}

func TestImportMalformedJSONRejected(t *testing.T) {
	svc := newTestService(t)

	err := svc.Import(context.Background(), []byte(`{"tasks": [`))
	var formatErr SnapshotFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestImportUnknownTaskReferenceRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := `{
		"tasks": [],
		"completions": [{"id": "c1", "taskId": 7, "completedAt": "2024-06-15T10:00:00Z", "day": "2024-06-15", "points": 30}],
		"userData": {"totalPoints": 30, "level": 1, "streak": 0, "health": 100, "maxHealth": 100,
			"lastProcessedDate": "2024-06-15",
			"settings": {"animationsEnabled": true, "soundEnabled": true, "theme": "light", "notifications": true}}
	}`
	err := svc.Import(ctx, []byte(doc))
	var formatErr SnapshotFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "unknown task")
}

func TestImportInvalidDifficultyRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc := `{
		"tasks": [{"id": 1, "name": "Bad", "difficulty": 9, "category": "mandatory", "repeatable": false,
			"createdAt": "2024-06-15T10:00:00Z", "updatedAt": "2024-06-15T10:00:00Z"}],
		"completions": [],
		"userData": {"totalPoints": 0, "level": 1, "streak": 0, "health": 100, "maxHealth": 100,
			"lastProcessedDate": "2024-06-15",
			"settings": {"animationsEnabled": true, "soundEnabled": true, "theme": "light", "notifications": true}}
	}`
	err := svc.Import(ctx, []byte(doc))
	var formatErr SnapshotFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "difficulty")
}

func TestImportRecomputesLevelFromPoints(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Stored level lies about the point total; the resolver wins.
	doc := `{
		"tasks": [],
		"completions": [],
		"userData": {"totalPoints": 250, "level": 9, "streak": 0, "health": 100, "maxHealth": 100,
			"lastProcessedDate": "2024-06-15",
			"settings": {"animationsEnabled": true, "soundEnabled": true, "theme": "light", "notifications": true}}
	}`
	require.NoError(t, svc.Import(ctx, []byte(doc)))

	p, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Level)
}

func stripExportedAt(t *testing.T, data []byte) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	delete(m, "exportedAt")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
