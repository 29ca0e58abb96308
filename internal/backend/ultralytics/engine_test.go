package ultralytics

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/model"
)

func TestEngineConverter_Export(t *testing.T) {
	python := new(MockInterpreter)
	python.On("Execute", mock.Anything, scriptArgs(entryPointScript, newLocation.Module, newLocation.Name), nil).
		Return([]byte(nil), []byte(nil), nil).Once()
	python.On("Stream", mock.Anything, scriptArgs(onnxToEngineScript, newLocation.Module, "/w/model.ONNX", "/w/model.engine", "0"), nil).
		Return(chunks(nil, "[TRT] building", resultPrefix+"/w/model.engine"), nil).Once()

	var out bytes.Buffer
	got, err := NewEngineConverter(python, &out).Export(context.Background(), &backend.Request{
		ModelPath: "/w/model.ONNX",
		Format:    model.FormatEngine,
		Device:    "0",
	})

	require.NoError(t, err)
	assert.Equal(t, "/w/model.engine", got)
	assert.Contains(t, out.String(), "STATIC mode (dynamic=False) with precision: FP32 (Full)")
	assert.Contains(t, out.String(), "[TRT] building")
	python.AssertExpectations(t)
}

func TestEngineConverter_UsesLegacyLocation(t *testing.T) {
	python := new(MockInterpreter)
	python.On("Execute", mock.Anything, scriptArgs(entryPointScript, newLocation.Module, newLocation.Name), nil).
		Return([]byte(nil), []byte(nil), errors.New("exit status 1")).Once()
	python.On("Execute", mock.Anything, scriptArgs(entryPointScript, oldLocation.Module, oldLocation.Name), nil).
		Return([]byte(nil), []byte(nil), nil).Once()
	python.On("Stream", mock.Anything, scriptArgs(onnxToEngineScript, oldLocation.Module, "model.onnx", "model.engine", "1"), nil).
		Return(chunks(nil, resultPrefix+"model.engine"), nil).Once()

	got, err := NewEngineConverter(python, &bytes.Buffer{}).Export(context.Background(), &backend.Request{
		ModelPath: "model.onnx", Format: model.FormatEngine, Half: true, Device: "0",
	})

	require.NoError(t, err)
	assert.Equal(t, "model.engine", got)
	python.AssertExpectations(t)
}

func TestEngineConverter_EntryPointMissing(t *testing.T) {
	python := new(MockInterpreter)
	python.On("Execute", mock.Anything, mock.Anything, nil).
		Return([]byte(nil), []byte(nil), errors.New("exit status 1")).Twice()

	var out bytes.Buffer
	_, err := NewEngineConverter(python, &out).Export(context.Background(), &backend.Request{
		ModelPath: "model.onnx", Format: model.FormatEngine, Device: "0",
	})

	assert.ErrorIs(t, err, ErrEntryPointNotFound)
	assert.Contains(t, out.String(), "pip install -U ultralytics")
	python.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister(t *testing.T) {
	reg := backend.NewRegistry()
	require.NoError(t, Register(reg, new(MockInterpreter), &bytes.Buffer{}))
	assert.Equal(t, 3, reg.Routes())

	e, err := reg.Get(backend.Route{Kind: model.KindONNX, Format: model.FormatEngine})
	require.NoError(t, err)
	assert.Equal(t, "ultralytics.onnx2engine", e.Name())

	e, err = reg.Get(backend.Route{Kind: model.KindCheckpoint, Format: model.FormatEngine})
	require.NoError(t, err)
	assert.Equal(t, "ultralytics.export", e.Name())

	_, err = reg.Get(backend.Route{Kind: model.KindONNX, Format: model.FormatONNX})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}
