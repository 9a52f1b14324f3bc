package logging

import "testing"

func TestNilLoggerMethodsDoNotPanic(t *testing.T) {
	var logger *Logger
	logger.Info("hello")
	logger.Infof("hello %s", "world")
	logger.Debug("hello")
	logger.Warn(errDummy)
	logger.Error(errDummy)
	if logger.Sublogger("x") != nil {
		t.Error("expected Sublogger on a nil Logger to return nil")
	}
	if logger.Writer() == nil {
		t.Error("expected Writer on a nil Logger to return a non-nil discard writer")
	}
}

func TestSubloggerBuildsDottedPrefix(t *testing.T) {
	root := &Logger{}
	child := root.Sublogger("a").Sublogger("b")
	if child.prefix != "a.b" {
		t.Errorf("got prefix %q, want %q", child.prefix, "a.b")
	}
}

func TestLevelGating(t *testing.T) {
	SetLevel(LevelError)
	defer SetLevel(LevelInfo)
	if enabled(LevelInfo) {
		t.Error("expected Info level to be disabled when level is set to Error")
	}
	if !enabled(LevelError) {
		t.Error("expected Error level to remain enabled")
	}
}

type dummyError struct{}

func (dummyError) Error() string { return "dummy" }

var errDummy = dummyError{}
