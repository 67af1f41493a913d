package sandbox

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/san-kum/partsim/internal/integrators"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/physics"
)

func batchJob(name string, duration float32) BatchJob {
	return BatchJob{
		Name: name,
		Build: func() (*Session, RunConfig, error) {
			w := physics.NewWorld(integrators.NewEuler(), -9.81, mgl32.Vec2{800, 600}, 100)
			sp := NewSpawner(SpawnerConfig{Seed: 1})
			sess := NewSession(w, sp, zap.NewNop())
			sess.AddMetric(metrics.NewKineticEnergy())
			sess.Spawn(SpawnRequest{Pos: mgl32.Vec2{0, 200}})
			return sess, RunConfig{Dt: 1.0 / 60.0, Duration: duration}, nil
		},
	}
}

func TestBatchRunsAllJobs(t *testing.T) {
	jobs := make([]BatchJob, 6)
	for i := range jobs {
		jobs[i] = batchJob(fmt.Sprintf("job-%d", i), 0.5)
	}

	results := NewBatch(3).Run(context.Background(), jobs)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Name != fmt.Sprintf("job-%d", i) {
			t.Errorf("expected results in job order, got %s at %d", res.Name, i)
		}
		if res.Err != nil {
			t.Errorf("job %s failed: %v", res.Name, res.Err)
		}
		if res.Frames != 30 {
			t.Errorf("expected 30 frames for %s, got %d", res.Name, res.Frames)
		}
		if res.Metrics["kinetic_energy"] <= 0 {
			t.Errorf("expected positive energy for %s, got %f", res.Name, res.Metrics["kinetic_energy"])
		}
	}
}

func TestBatchCollectsBuildErrors(t *testing.T) {
	wantErr := errors.New("bad config")
	jobs := []BatchJob{
		batchJob("ok", 0.1),
		{Name: "broken", Build: func() (*Session, RunConfig, error) { return nil, RunConfig{}, wantErr }},
	}

	results := NewBatch(2).Run(context.Background(), jobs)
	if results[0].Err != nil {
		t.Errorf("expected first job to succeed, got %v", results[0].Err)
	}
	if results[1].Err != wantErr {
		t.Errorf("expected build error surfaced, got %v", results[1].Err)
	}
}

func TestBatchCollectsRunErrors(t *testing.T) {
	jobs := []BatchJob{{
		Name: "invalid",
		Build: func() (*Session, RunConfig, error) {
			w := physics.NewWorld(integrators.NewEuler(), -9.81, mgl32.Vec2{800, 600}, 100)
			sess := NewSession(w, NewSpawner(SpawnerConfig{Seed: 1}), zap.NewNop())
			return sess, RunConfig{Dt: 0, Duration: 1}, nil
		},
	}}

	results := NewBatch(1).Run(context.Background(), jobs)
	if results[0].Err == nil {
		t.Error("expected run validation error surfaced")
	}
}

func TestBatchHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []BatchJob{batchJob("a", 1000), batchJob("b", 1000)}
	results := NewBatch(2).Run(ctx, jobs)

	for _, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("expected %s cancelled, got %v", res.Name, res.Err)
		}
	}
}

func TestBatchSingleWorker(t *testing.T) {
	jobs := []BatchJob{batchJob("a", 0.1), batchJob("b", 0.1), batchJob("c", 0.1)}

	results := NewBatch(1).Run(context.Background(), jobs)
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("job %s failed: %v", res.Name, res.Err)
		}
	}
}

func TestBatchCustomRun(t *testing.T) {
	job := batchJob("custom", 0.5)
	ran := false
	job.Run = func(ctx context.Context, sess *Session, rc RunConfig) error {
		ran = true
		for i := 0; i < 10; i++ {
			sess.StepFrame(rc.Dt)
		}
		return nil
	}

	results := NewBatch(1).Run(context.Background(), []BatchJob{job})
	if !ran {
		t.Fatal("expected the custom run hook to be called")
	}
	if results[0].Err != nil {
		t.Fatalf("job failed: %v", results[0].Err)
	}
	if results[0].Frames != 10 {
		t.Errorf("expected 10 frames from custom loop, got %d", results[0].Frames)
	}
}
