package response

type DatabaseInfoResponse struct {
	DatabaseURL string `json:"database_url"`
	EngineName  string `json:"engine_name"`
	IsPostgres  bool   `json:"is_postgres"`
}

type UsersCountResponse struct {
	UsersCount int64 `json:"users_count"`
}

type TablesResponse struct {
	Tables []string `json:"tables"`
}
