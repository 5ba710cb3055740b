package mocks

//go:generate mockery --name EventStore --srcpkg github.com/querystats-lab/querystats/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SnapshotStore --srcpkg github.com/querystats-lab/querystats/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
