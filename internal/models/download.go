package models

// DownloadStatus описывает состояние загрузки одного товара в рамках
// одного прогона фулфилмента. Карта productId -> DownloadStatus живёт только
// в памяти и пересобирается на каждый прогон.
type DownloadStatus string

const (
	// DownloadPending — загрузка ещё не начиналась.
	DownloadPending DownloadStatus = "pending"
	// DownloadInProgress — загрузка выполняется.
	DownloadInProgress DownloadStatus = "downloading"
	// DownloadCompleted — файл сохранён.
	DownloadCompleted DownloadStatus = "completed"
	// DownloadFailed — загрузка завершилась ошибкой; остальные товары
	// при этом всё равно загружаются.
	DownloadFailed DownloadStatus = "failed"
)
