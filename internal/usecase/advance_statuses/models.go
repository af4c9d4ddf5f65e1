package advance_statuses

import "time"

// Response итог одного прохода
type Response struct {
	Started      int64     // confirmed -> ongoing
	Completed    int64     // confirmed/ongoing -> expired
	ExpiredHolds int64     // pending -> expired
	Today        time.Time // дата, относительно которой считались переходы
}
