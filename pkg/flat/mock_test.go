package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// nopRun is a run context that accepts everything.
type nopRun struct{}

func (nopRun) DeclareParameter(string, string) error       { return nil }
func (nopRun) SetParameterValue(string, any, string) error { return nil }
func (nopRun) AddDataPoint(domain.DataPoint) error         { return nil }
func (nopRun) AddDataPointValues(...float64) error         { return nil }
func (nopRun) AddDataPointText(string) error               { return nil }
func (nopRun) Close() error                                { return nil }

type mockRoot struct {
	mock.Mock
}

func (m *mockRoot) CreateDimension() (ports.DimensionContext, error) {
	args := m.Called()
	if v := args.Get(0); v != nil {
		return v.(ports.DimensionContext), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoot) CreateInstance() (ports.InstanceContext, error) {
	args := m.Called()
	return nil, args.Error(1)
}

func (m *mockRoot) CreateExperiment() (ports.ExperimentContext, error) {
	args := m.Called()
	return nil, args.Error(1)
}

func (m *mockRoot) DeclareFeature(name, description string) error {
	return m.Called(name, description).Error(0)
}

func (m *mockRoot) DeclareParameter(name, description string) error {
	return m.Called(name, description).Error(0)
}

func (m *mockRoot) DimensionSet() (domain.DimensionSet, error) {
	args := m.Called()
	return args.Get(0).(domain.DimensionSet), args.Error(1)
}

func (m *mockRoot) InstanceSet() (domain.InstanceSet, error) {
	args := m.Called()
	return args.Get(0).(domain.InstanceSet), args.Error(1)
}

func (m *mockRoot) FeatureSet() (domain.FeatureSet, error) {
	args := m.Called()
	return args.Get(0).(domain.FeatureSet), args.Error(1)
}

func (m *mockRoot) ParameterSet() (domain.ParameterSet, error) {
	args := m.Called()
	return args.Get(0).(domain.ParameterSet), args.Error(1)
}

func (m *mockRoot) Create() (*domain.ExperimentSet, error) {
	args := m.Called()
	set, _ := args.Get(0).(*domain.ExperimentSet)
	return set, args.Error(1)
}

func (m *mockRoot) Close() error {
	return m.Called().Error(0)
}

type mockDimension struct {
	mock.Mock
}

func (m *mockDimension) SetName(name string) error          { return m.Called(name).Error(0) }
func (m *mockDimension) SetDescription(text string) error   { return m.Called(text).Error(0) }
func (m *mockDimension) AddDescription(text string) error   { return m.Called(text).Error(0) }
func (m *mockDimension) SetParser(p ports.NumberParser) error { return m.Called(p).Error(0) }

func (m *mockDimension) SetDirection(d domain.DimensionDirection) error {
	return m.Called(d).Error(0)
}

func (m *mockDimension) SetType(typ domain.DimensionType) error {
	return m.Called(typ).Error(0)
}

func (m *mockDimension) Close() error {
	return m.Called().Error(0)
}

func TestBuilder_MockedCollaborator(t *testing.T) {
	dim := new(mockDimension)
	dim.On("SetName", "time").Return(nil).Once()
	dim.On("SetType", domain.DimensionTypeTime).Return(nil).Once()
	dim.On("Close").Return(nil).Once()

	root := new(mockRoot)
	root.On("CreateDimension").Return(dim, nil).Once()
	root.On("DimensionSet").Return(domain.DimensionSet{{Name: "time", Type: domain.DimensionTypeTime}}, nil).Once()
	root.On("Create").Return(&domain.ExperimentSet{}, nil).Once()

	b := New(root)
	require.NoError(t, b.DimensionSetName("time"))
	require.NoError(t, b.DimensionSetType(domain.DimensionTypeTime))

	dims, err := b.DimensionSet()
	require.NoError(t, err)
	assert.Equal(t, []string{"time"}, dims.Names())

	_, err = b.ExperimentSet()
	require.NoError(t, err)

	dim.AssertExpectations(t)
	root.AssertExpectations(t)
	root.AssertNotCalled(t, "Close")
}

func TestBuilder_PanickingCloseResetsState(t *testing.T) {
	dim := new(mockDimension)
	dim.On("Close").Panic("collaborator crashed").Once()

	root := new(mockRoot)
	root.On("CreateDimension").Return(dim, nil).Twice()

	b := New(root)
	require.NoError(t, b.DimensionBegin(false))

	assert.Panics(t, func() { _ = b.DimensionEnd() })
	assert.Equal(t, ModeRoot, b.Mode())

	// The guard was released and the builder keeps working.
	require.NoError(t, b.DimensionBegin(false))
	root.AssertExpectations(t)
}
