package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emberguard/internal/domain"
)

func seedTasks() []domain.HardeningTask {
	return []domain.HardeningTask{
		{ID: "1", Title: "Install Ember-Resistant Vents", Priority: domain.PriorityHigh, ResiliencyGain: 15},
		{ID: "2", Title: "Create Defensible Space", Priority: domain.PriorityHigh, ResiliencyGain: 25, Completed: true},
		{ID: "3", Title: "Upgrade to Fire-Resistant Roofing", Priority: domain.PriorityHigh, ResiliencyGain: 30},
		{ID: "4", Title: "Install Gutter Guards", Priority: domain.PriorityMedium, ResiliencyGain: 10},
		{ID: "5", Title: "Seal Gaps in Siding", Priority: domain.PriorityMedium, ResiliencyGain: 12, Completed: true},
		{ID: "6", Title: "Install Sprinkler System", Priority: domain.PriorityLow, ResiliencyGain: 20},
	}
}

func ids(tasks []domain.HardeningTask) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestTaskListSeedAggregates(t *testing.T) {
	l := domain.NewTaskList(seedTasks())

	assert.Equal(t, 37, l.TotalResiliencyGain())
	assert.Equal(t, []string{"2", "5"}, ids(l.Completed()))
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids(l.Pending()))
	assert.Equal(t, 33, l.ProgressPercentage())
	assert.Equal(t, []string{"1", "3"}, ids(l.HighPriorityPending()))
}

func TestTaskListEmptyProgress(t *testing.T) {
	l := domain.NewTaskList(nil)
	assert.Equal(t, 0, l.ProgressPercentage())
	assert.Equal(t, 0, l.TotalResiliencyGain())
	assert.Empty(t, l.Completed())
}

func TestTaskListProgressRounding(t *testing.T) {
	tests := []struct {
		done, total int
		want        int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{3, 3, 100},
		{0, 4, 0},
	}
	for _, tc := range tests {
		tasks := make([]domain.HardeningTask, tc.total)
		for i := range tasks {
			tasks[i] = domain.HardeningTask{ID: string(rune('a' + i)), Completed: i < tc.done}
		}
		got := domain.NewTaskList(tasks).ProgressPercentage()
		assert.Equal(t, tc.want, got, "%d/%d", tc.done, tc.total)
	}
}

func TestTaskListToggleRoundTrip(t *testing.T) {
	l := domain.NewTaskList(seedTasks())

	require.True(t, l.SetCompleted("1", true))
	assert.Contains(t, ids(l.Completed()), "1")
	assert.Equal(t, 52, l.TotalResiliencyGain())

	require.True(t, l.SetCompleted("1", false))
	assert.Contains(t, ids(l.Pending()), "1")
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids(l.Pending()))
}

func TestTaskListUnknownID(t *testing.T) {
	l := domain.NewTaskList(seedTasks())
	before := l.All()

	assert.False(t, l.SetCompleted("99", true))
	assert.Equal(t, before, l.All())

	_, ok := l.ByID("99")
	assert.False(t, ok)
}

func TestTaskListDoesNotAliasSeed(t *testing.T) {
	seed := seedTasks()
	l := domain.NewTaskList(seed)
	l.SetCompleted("1", true)
	assert.False(t, seed[0].Completed)

	all := l.All()
	all[1].Completed = false
	task, _ := l.ByID("2")
	assert.True(t, task.Completed)
}

func TestTaskListProgressSnapshot(t *testing.T) {
	p := domain.NewTaskList(seedTasks()).Progress()
	assert.Equal(t, 6, p.TotalTasks)
	assert.Equal(t, 2, p.CompletedTasks)
	assert.Equal(t, 33, p.Percentage)
	assert.Equal(t, 37, p.ResiliencyGain)
	assert.Len(t, p.HighPriorityPending, 2)
}

func TestParseEnums(t *testing.T) {
	c, err := domain.ParseTaskCategory("Fire Suppression")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFireSuppression, c)

	_, err = domain.ParseTaskCategory("Plumbing")
	assert.Error(t, err)

	p, err := domain.ParsePriority("low")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, p)

	_, err = domain.ParsePriority("urgent")
	assert.Error(t, err)
}
