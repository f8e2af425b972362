package datasource

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	ds      DataSource
	csvPath string
}

const marketCSV = `time,symbol,open,high,low,close,volume
2024-01-01 09:30:00,AAPL,100,101,99,100.5,1000
2024-01-01 09:31:00,AAPL,100.5,102,100,101.5,1500
2024-01-01 09:32:00,AAPL,101.5,103,101,,1200
2024-01-01 09:33:00,AAPL,102,104,101.5,103.5,
2024-01-01 09:30:00,MSFT,300,301,299,300.5,500
2024-01-01 09:31:00,MSFT,300.5,302,300,301.5,700
`

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.csvPath = filepath.Join(suite.T().TempDir(), "market.csv")
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(marketCSV), 0o600))

	ds, err := NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(ds.Initialize(suite.csvPath))

	suite.ds = ds
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.ds.Close())
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeries() {
	data, err := suite.ds.ReadSeries("AAPL", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Len(data, 4)

	for i := 1; i < len(data); i++ {
		suite.True(data[i].Time.After(data[i-1].Time))
	}

	suite.Equal("AAPL", data[0].Symbol)
	suite.Equal(100.0, data[0].Open)
	suite.Equal(101.0, data[0].High)
	suite.Equal(99.0, data[0].Low)
	suite.Equal(100.5, data[0].Close)
	suite.Equal(1000.0, data[0].Volume)
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesMissingValues() {
	data, err := suite.ds.ReadSeries("AAPL", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)

	// a missing close is NaN, a missing volume is zero
	suite.True(math.IsNaN(data[2].Close))
	suite.Equal(101.5, data[2].Open)
	suite.Equal(0.0, data[3].Volume)
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesTimeRange() {
	start := time.Date(2024, 1, 1, 9, 31, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 9, 32, 0, 0, time.UTC)

	data, err := suite.ds.ReadSeries("AAPL", optional.Some(start), optional.Some(end))
	suite.Require().NoError(err)
	suite.Len(data, 2)
	suite.Equal(101.5, data[0].Close)

	data, err = suite.ds.ReadSeries("AAPL", optional.Some(start), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Len(data, 3)

	data, err = suite.ds.ReadSeries("AAPL", optional.None[time.Time](), optional.Some(start))
	suite.Require().NoError(err)
	suite.Len(data, 2)
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesUnknownSymbol() {
	data, err := suite.ds.ReadSeries("TSLA", optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Empty(data)
}

func (suite *DuckDBDataSourceTestSuite) TestListSymbols() {
	symbols, err := suite.ds.ListSymbols()
	suite.NoError(err)
	suite.Equal([]string{"AAPL", "MSFT"}, symbols)
}

func (suite *DuckDBDataSourceTestSuite) TestCount() {
	count, err := suite.ds.Count("AAPL")
	suite.NoError(err)
	suite.Equal(4, count)

	count, err = suite.ds.Count("MSFT")
	suite.NoError(err)
	suite.Equal(2, count)

	count, err = suite.ds.Count("TSLA")
	suite.NoError(err)
	suite.Equal(0, count)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeUnsupportedExtension() {
	err := suite.ds.Initialize(filepath.Join(suite.T().TempDir(), "market.json"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	err := suite.ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.parquet"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}
