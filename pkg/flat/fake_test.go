package flat_test

import (
	"fmt"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// recorder logs every collaborator call as "op:kind#id" and fails the calls listed in fail,
// keyed either by "op:kind" or by the full event.
type recorder struct {
	events []string
	fail   map[string]error
	ids    map[string]int
}

func newRecorder() *recorder {
	return &recorder{fail: map[string]error{}, ids: map[string]int{}}
}

func (r *recorder) record(op string, c *fakeCtx) error {
	key := op + ":" + c.kind
	event := fmt.Sprintf("%s#%d", key, c.id)
	r.events = append(r.events, event)
	if err, ok := r.fail[event]; ok {
		return err
	}
	return r.fail[key]
}

func (r *recorder) create(kind string) (*fakeCtx, error) {
	r.ids[kind]++
	c := &fakeCtx{r: r, kind: kind, id: r.ids[kind]}
	if err := r.record("create", c); err != nil {
		return nil, err
	}
	return c, nil
}

// fakeCtx implements every level context.
type fakeCtx struct {
	r    *recorder
	kind string
	id   int
}

func (c *fakeCtx) SetName(string) error        { return c.r.record("name", c) }
func (c *fakeCtx) SetDescription(string) error { return c.r.record("description", c) }
func (c *fakeCtx) AddDescription(string) error { return c.r.record("description", c) }

func (c *fakeCtx) SetDirection(domain.DimensionDirection) error { return c.r.record("direction", c) }
func (c *fakeCtx) SetType(domain.DimensionType) error           { return c.r.record("type", c) }
func (c *fakeCtx) SetParser(ports.NumberParser) error           { return c.r.record("parser", c) }

func (c *fakeCtx) DeclareFeature(string, string) error       { return c.r.record("feature", c) }
func (c *fakeCtx) SetFeatureValue(string, any, string) error { return c.r.record("feature", c) }
func (c *fakeCtx) SetLowerBound(string, any) error           { return c.r.record("bound", c) }
func (c *fakeCtx) SetUpperBound(string, any) error           { return c.r.record("bound", c) }

func (c *fakeCtx) DeclareParameter(string, string) error       { return c.r.record("parameter", c) }
func (c *fakeCtx) SetParameterValue(string, any, string) error { return c.r.record("parameter", c) }

func (c *fakeCtx) CreateInstanceRuns() (ports.InstanceRunsContext, error) {
	ctx, err := c.r.create("runs")
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (c *fakeCtx) SetInstance(string) error { return c.r.record("instance", c) }

func (c *fakeCtx) CreateRun() (ports.RunContext, error) {
	ctx, err := c.r.create("run")
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (c *fakeCtx) AddDataPoint(domain.DataPoint) error { return c.r.record("point", c) }
func (c *fakeCtx) AddDataPointValues(...float64) error { return c.r.record("point", c) }
func (c *fakeCtx) AddDataPointText(string) error       { return c.r.record("point", c) }

func (c *fakeCtx) Close() error { return c.r.record("close", c) }

// fakeRoot is the root collaborator over a recorder.
type fakeRoot struct {
	*recorder
	self *fakeCtx
}

func newFakeRoot() *fakeRoot {
	r := newRecorder()
	return &fakeRoot{recorder: r, self: &fakeCtx{r: r, kind: "root", id: 1}}
}

func (f *fakeRoot) CreateDimension() (ports.DimensionContext, error) {
	ctx, err := f.create("dimension")
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (f *fakeRoot) CreateInstance() (ports.InstanceContext, error) {
	ctx, err := f.create("instance")
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (f *fakeRoot) CreateExperiment() (ports.ExperimentContext, error) {
	ctx, err := f.create("experiment")
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (f *fakeRoot) DeclareFeature(string, string) error   { return f.record("feature", f.self) }
func (f *fakeRoot) DeclareParameter(string, string) error { return f.record("parameter", f.self) }

func (f *fakeRoot) DimensionSet() (domain.DimensionSet, error) {
	return domain.DimensionSet{}, f.record("dimensions", f.self)
}

func (f *fakeRoot) InstanceSet() (domain.InstanceSet, error) {
	return domain.InstanceSet{}, f.record("instances", f.self)
}

func (f *fakeRoot) FeatureSet() (domain.FeatureSet, error) {
	return domain.FeatureSet{}, f.record("features", f.self)
}

func (f *fakeRoot) ParameterSet() (domain.ParameterSet, error) {
	return domain.ParameterSet{}, f.record("parameters", f.self)
}

func (f *fakeRoot) Create() (*domain.ExperimentSet, error) {
	if err := f.record("create", f.self); err != nil {
		return nil, err
	}
	return &domain.ExperimentSet{}, nil
}

func (f *fakeRoot) Close() error { return f.record("close", f.self) }

// count returns how many recorded events equal event.
func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}
