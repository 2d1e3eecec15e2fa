// Copyright 2019 Hewlett Packard Enterprise Development LP
package logger

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func getLogFile() string {
	return os.TempDir() + string(os.PathSeparator) + "frnsc-triage-test.log"
}

func logAllLevels(testName string) {
	log.Tracef("%s:%s", testName, log.TraceLevel.String())
	log.Debugf("%s:%s", testName, log.DebugLevel.String())
	log.Infof("%s:%s", testName, log.InfoLevel.String())
	log.Errorf("%s:%s", testName, log.ErrorLevel.String())
	log.Warnf("%s:%s", testName, log.WarnLevel.String())
}

func testContains(t *testing.T, logFile, testName, level string, shouldContain bool) {
	b, err := ioutil.ReadFile(logFile)
	assert.NoError(t, err)
	assert.Equal(t, shouldContain, strings.Contains(string(b), fmt.Sprintf("%s:%s", testName, level)))
}

func TestInitLogging(t *testing.T) {
	logFile := getLogFile()
	os.RemoveAll(logFile)
	defer os.RemoveAll(logFile)

	// stdout-only: no file should be created.
	_, err := InitLogging("", nil, true)
	assert.NoError(t, err)
	logAllLevels("stdout_only")
	_, statErr := os.Stat(logFile)
	assert.True(t, os.IsNotExist(statErr))

	// default level is info.
	_, err = InitLogging(logFile, nil, false)
	assert.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, log.GetLevel().String())

	testName := "default_info_level"
	logAllLevels(testName)
	testContains(t, logFile, testName, "info", true)
	testContains(t, logFile, testName, "warning", true)
	testContains(t, logFile, testName, "error", true)
	testContains(t, logFile, testName, "trace", false)
	testContains(t, logFile, testName, "debug", false)

	// explicit trace override.
	_, err = InitLogging(logFile, &LogParams{Level: "trace"}, false)
	assert.NoError(t, err)
	assert.Equal(t, log.TraceLevel.String(), log.GetLevel().String())

	testName = "trace_override"
	logAllLevels(testName)
	testContains(t, logFile, testName, "trace", true)
	testContains(t, logFile, testName, "debug", true)
}

func TestLogParamsDefaults(t *testing.T) {
	p := LogParams{}
	assert.Equal(t, DefaultLogLevel, p.GetLevel())
	assert.Equal(t, DefaultLogFormat, p.GetLogFormat())
	assert.Equal(t, DefaultMaxLogFiles, p.GetMaxFiles())
	assert.Equal(t, DefaultMaxLogSize, p.GetMaxSize())
}

func TestScrubber(t *testing.T) {
	assert.True(t, IsSensitive("SAM-username"))
	assert.False(t, IsSensitive("out_file"))

	assert.Equal(t, []string{"**********"}, Scrubber([]string{"C:\\Users\\alice", "password=hunter2"}))
	assert.Equal(t, []string{"a", "b"}, Scrubber([]string{"a", "b"}))

	scrubbed := MapScrubber(map[string]string{"ProfileImagePath": "C:\\Users\\alice", "password": "hunter2"})
	assert.Equal(t, "C:\\Users\\alice", scrubbed["ProfileImagePath"])
	assert.Equal(t, "**********", scrubbed["password"])
}
