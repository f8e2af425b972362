package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/stretchr/testify/suite"
)

const marketCSV = `time,symbol,open,high,low,close,volume
2024-01-01 09:30:00,AAPL,100,101,99,100.5,1000
2024-01-01 09:31:00,AAPL,100.5,102,100,101.5,1500
2024-01-01 09:32:00,AAPL,101.5,103,101,,1200
2024-01-01 09:33:00,AAPL,102,104,101.5,103.5,800
2024-01-01 09:30:00,MSFT,300,301,299,300.5,500
`

type CLITestSuite struct {
	suite.Suite
	tempDir string
	csvPath string
	stdout  *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.csvPath = filepath.Join(suite.tempDir, "market.csv")
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(marketCSV), 0o600))
	suite.stdout = &bytes.Buffer{}
}

func (suite *CLITestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.stdout
	app.ErrWriter = &bytes.Buffer{}

	return app.Run(context.Background(), append([]string{"argo-indicators", "--log-level", "error"}, args...))
}

func (suite *CLITestSuite) TestVersion() {
	suite.Require().NoError(suite.run("version"))
	suite.Equal(version.GetVersion()+"\n", suite.stdout.String())
}

func (suite *CLITestSuite) TestSchema() {
	suite.Require().NoError(suite.run("schema"))

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &schema))
	suite.Contains(suite.stdout.String(), "jobs")
}

func (suite *CLITestSuite) TestSchemaToFile() {
	path := filepath.Join(suite.tempDir, "schema.json")
	suite.Require().NoError(suite.run("schema", "--output", path))

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(content), "data_path")
}

func (suite *CLITestSuite) TestCompute() {
	suite.Require().NoError(suite.run("compute", "--data", suite.csvPath, "--symbol", "AAPL", "--indicator", "sma", "--period", "2"))

	var out computeOutput
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &out))
	suite.Equal("AAPL", out.Symbol)
	suite.Equal(2, out.Params.Period)
	suite.Require().Len(out.Points, 4)

	suite.Nil(out.Points[0].Values["sma"])
	suite.InDelta(101.0, *out.Points[1].Values["sma"], 1e-9)
	// The missing close falls back to the open price.
	suite.InDelta(101.5, *out.Points[2].Values["sma"], 1e-9)
	suite.InDelta(102.5, *out.Points[3].Values["sma"], 1e-9)
}

func (suite *CLITestSuite) TestComputeUnknownIndicator() {
	err := suite.run("compute", "--data", suite.csvPath, "--symbol", "AAPL", "--indicator", "ichimoku")
	suite.Error(err)
}

func (suite *CLITestSuite) TestComputeUnknownSymbol() {
	err := suite.run("compute", "--data", suite.csvPath, "--symbol", "TSLA", "--indicator", "sma")
	suite.Error(err)
}

func (suite *CLITestSuite) TestRun() {
	outputPath := filepath.Join(suite.tempDir, "out", "results.parquet")
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	config := fmt.Sprintf(`
version: %s
data_path: %s
output_path: %s
jobs:
  - name: aapl-sma
    symbol: AAPL
    indicator: sma
    params: {period: 2}
  - name: msft-rsi
    symbol: MSFT
    indicator: rsi
`, version.GetVersion(), suite.csvPath, outputPath)
	suite.Require().NoError(os.WriteFile(configPath, []byte(config), 0o600))

	suite.Require().NoError(suite.run("run", "--config", configPath, "--quiet"))
	suite.Contains(suite.stdout.String(), "1 completed, 1 skipped")

	_, err := os.Stat(outputPath)
	suite.NoError(err)
}

func (suite *CLITestSuite) TestExecMissingFile() {
	err := suite.run("exec", "--wasm", filepath.Join(suite.tempDir, "missing.wasm"))
	suite.Error(err)
}
