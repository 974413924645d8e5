package scaler

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/deployer"
)

func TestNewBounds(t *testing.T) {

	logrus.SetOutput(io.Discard)

	_, err := NewBounds(deployer.NewMock(), 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Errorf("unexpected failure to create bounds scaler: %s", err)
	}

	_, err = NewBounds(nil, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err == nil {
		t.Errorf("expected failure to create bounds scaler without deployer, but passed")
	}

	_, err = NewBounds(deployer.NewMock(), 0, 0, logrus.WithFields(logrus.Fields{}))
	if err == nil {
		t.Errorf("expected failure to create bounds scaler with zero maximum, but passed")
	}

	_, err = NewBounds(deployer.NewMock(), 5, 2, logrus.WithFields(logrus.Fields{}))
	if err == nil {
		t.Errorf("expected failure to create bounds scaler with maximum below minimum, but passed")
	}
}

func TestScaleAutomaticBelowMinimum(t *testing.T) {

	logrus.SetOutput(io.Discard)

	mockDeployer := deployer.NewMock()
	bounds, err := NewBounds(mockDeployer, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Fatalf("unexpected failure to create bounds scaler: %s", err)
	}

	direction, scaled, err := bounds.ScaleAutomatic()
	if err != nil {
		t.Errorf("unexpected failure to scale automatically: %s", err)
	}

	if direction != "up" {
		t.Errorf("expected scale direction to be up, got: %s", direction)
	}

	if !scaled {
		t.Errorf("expected automatic scaling to trigger, but it didn't")
	}

	instanceCount, err := bounds.Count()
	if err != nil {
		t.Errorf("unexpected failure to read instance count: %s", err)
	}
	if instanceCount != 1 {
		t.Errorf("expected instance count to be 1 after scale up, got %d", instanceCount)
	}
}

func TestScaleAutomaticAboveMaximum(t *testing.T) {

	logrus.SetOutput(io.Discard)

	mockDeployer := deployer.NewMockWithCount(5)
	bounds, err := NewBounds(mockDeployer, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Fatalf("unexpected failure to create bounds scaler: %s", err)
	}

	direction, scaled, err := bounds.ScaleAutomatic()
	if err != nil {
		t.Errorf("unexpected failure to scale automatically: %s", err)
	}

	if direction != "down" {
		t.Errorf("expected scale direction to be down, got: %s", direction)
	}

	if !scaled {
		t.Errorf("expected automatic scaling to trigger, but it didn't")
	}

	instanceCount, err := bounds.Count()
	if err != nil {
		t.Errorf("unexpected failure to read instance count: %s", err)
	}
	if instanceCount != 4 {
		t.Errorf("expected instance count to be 4 after scale down, got %d", instanceCount)
	}
}

func TestScaleAutomaticWithinBounds(t *testing.T) {

	logrus.SetOutput(io.Discard)

	mockDeployer := deployer.NewMockWithCount(2)
	bounds, err := NewBounds(mockDeployer, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Fatalf("unexpected failure to create bounds scaler: %s", err)
	}

	direction, scaled, err := bounds.ScaleAutomatic()
	if err != nil {
		t.Errorf("unexpected failure to scale automatically: %s", err)
	}

	if direction != "none" {
		t.Errorf("expected scale direction to be none, got: %s", direction)
	}

	if scaled {
		t.Errorf("expected automatic scaling not to trigger, but it did")
	}
}

func TestScaleDownWithMinimum(t *testing.T) {

	logrus.SetOutput(io.Discard)

	mockDeployer := deployer.NewMockWithCount(1)
	bounds, err := NewBounds(mockDeployer, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Fatalf("unexpected failure to create bounds scaler: %s", err)
	}

	err = bounds.ScaleDown()
	if err == nil {
		t.Errorf("expected failure to scale down below minimum, but passed")
	}
}

func TestScaleToZero(t *testing.T) {

	logrus.SetOutput(io.Discard)

	mockDeployer := deployer.NewMockWithCount(2)
	bounds, err := NewBounds(mockDeployer, 1, 3, logrus.WithFields(logrus.Fields{}))
	if err != nil {
		t.Fatalf("unexpected failure to create bounds scaler: %s", err)
	}

	err = bounds.ScaleToZero()
	if err != nil {
		t.Errorf("unexpected failure to scale to zero: %s", err)
	}

	instanceCount, err := bounds.Count()
	if err != nil {
		t.Errorf("unexpected failure to read instance count: %s", err)
	}
	if instanceCount != 0 {
		t.Errorf("expected instance count to be 0 after scale to zero, got %d", instanceCount)
	}
}
