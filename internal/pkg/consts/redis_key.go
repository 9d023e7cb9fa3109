package consts

const (
	ScrapeStatusKey = "scrape:status:"
)
