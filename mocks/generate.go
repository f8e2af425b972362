package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/datasource DataSource
//go:generate mockgen -destination=./mock_result_writer.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/writer ResultWriter
