package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/roster --output domain/roster --outpkg rostermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RowSource --dir ../domain/boxscore --output domain/boxscore --outpkg boxscoremock --filename row_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RowWriter --dir ../domain/boxscore --output domain/boxscore --outpkg boxscoremock --filename row_writer_mock.go
