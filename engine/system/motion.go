package system

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

// Binding pairs a motion controller with the role of the entity it moves.
type Binding struct {
	Role       scene.Role
	Controller motion.Controller

	missing missingTarget
}

// MotionSystem runs every binding's planar motion once per tick.
// With Workers > 0 the integrations run on a worker pool; targets are always
// resolved sequentially first since the world must not be queried concurrently.
type MotionSystem struct {
	Scene    scene.Scene
	Bindings []*Binding
	Workers  int
	Log      *zap.Logger

	frame ecs.Resource[Frame]
	pool  worker.DynamicWorkerPool
	jobs  []motionJob
}

type motionJob struct {
	controller motion.Controller
	target     *transform.Transform
}

func (s *MotionSystem) Initialize(w *ecs.World) {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	s.frame = ecs.NewResource[Frame](w)
	if s.Workers > 0 {
		s.pool = worker.NewDynamicWorkerPool(s.Workers, 256, 1*time.Second)
	}
	s.jobs = make([]motionJob, 0, len(s.Bindings))
}

func (s *MotionSystem) Update(w *ecs.World) {
	frame := frameOf(s.frame)

	s.jobs = s.jobs[:0]
	for _, b := range s.Bindings {
		t, err := s.Scene.Resolve(b.Role)
		b.missing.report(s.Log, b.Role.String(), err)
		if err != nil {
			continue
		}
		s.jobs = append(s.jobs, motionJob{controller: b.Controller, target: t})
	}

	if s.pool == nil || len(s.jobs) < 2 {
		for _, j := range s.jobs {
			j.controller.Update(frame.Delta, frame.Keys, j.target)
		}
		return
	}

	// The pool's own Wait blocks until workers go idle, so a WaitGroup is the per-tick barrier.
	var wg sync.WaitGroup
	for i, j := range s.jobs {
		wg.Add(1)
		job := j
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				job.controller.Update(frame.Delta, frame.Keys, job.target)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *MotionSystem) Finalize(w *ecs.World) {
	if s.pool != nil {
		s.pool.Stop()
		s.pool = nil
	}
}
