package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
)

// Text keys for localization
const (
	KeyAppTitle = "app_title"

	// Tabs and panels
	KeyTabDownloader     = "tab_downloader"
	KeyTabQueue          = "tab_queue"
	KeyTabHistory        = "tab_history"
	KeyTabSettings       = "tab_settings"
	KeyCurrentDownload   = "current_download"
	KeyURLInput          = "url_input"
	KeyDownloadOptions   = "download_options"
	KeyVideoInformation  = "video_information"
	KeyPlaylistItems     = "playlist_items"
	KeyDefaultFolder     = "default_folder"
	KeyFilenameTemplate  = "filename_template"
	KeySpeedLimit        = "speed_limit"
	KeyInterfaceSettings = "interface_settings"

	// Buttons
	KeyFetchInfo          = "fetch_info"
	KeySelectOutputFolder = "select_output_folder"
	KeyDownloadNow        = "download_now"
	KeyAddToQueue         = "add_to_queue"
	KeyClearInfo          = "clear_info"
	KeyStartQueue         = "start_queue"
	KeyClearQueue         = "clear_queue"
	KeyClearHistory       = "clear_history"
	KeyBrowse             = "browse"
	KeySaveSettings       = "save_settings"
	KeyStop               = "stop"
	KeyOpenFolder         = "open_folder"
	KeySelectAll          = "select_all"
	KeySelectNone         = "select_none"

	// Field labels
	KeyEnterURL           = "enter_url"
	KeyFormat             = "format"
	KeyQuality            = "quality"
	KeyTitle              = "title"
	KeyDuration           = "duration"
	KeyEstimatedSize      = "estimated_size"
	KeySpeed              = "speed"
	KeyETA                = "eta"
	KeyColumnTitle        = "column_title"
	KeyColumnQuality      = "column_quality"
	KeyColumnFormat       = "column_format"
	KeyColumnURL          = "column_url"
	KeyColumnDate         = "column_date"
	KeyLanguage           = "language"
	KeyDefaultFormat      = "default_format"
	KeyOpenFolderOnFinish = "open_folder_on_finish"

	// Status messages
	KeyStatusWelcome           = "status_welcome"
	KeyStatusFetching          = "status_fetching"
	KeyStatusPlaylistFetched   = "status_playlist_fetched"
	KeyStatusVideoFetched      = "status_video_fetched"
	KeyStatusFetchError        = "status_fetch_error"
	KeyStatusLiveStream        = "status_live_stream"
	KeyStatusEmptyPlaylist     = "status_empty_playlist"
	KeyStatusPleaseEnterURL    = "status_please_enter_url"
	KeyStatusInvalidURL        = "status_invalid_url"
	KeyStatusNoItemsToAdd      = "status_no_items_to_add"
	KeyStatusNoItemsToDownload = "status_no_items_to_download"
	KeyStatusAddedToQueue      = "status_added_to_queue"
	KeyStatusQueueEmpty        = "status_queue_empty"
	KeyStatusBusy              = "status_busy"
	KeyStatusNoOutputPath      = "status_no_output_path"
	KeyStatusDownloading       = "status_downloading"
	KeyStatusResolving         = "status_resolving"
	KeyStatusPostProcessing    = "status_postprocessing"
	KeyStatusItemFailed        = "status_item_failed"
	KeyStatusAllCompleted      = "status_all_completed"
	KeyStatusStopped           = "status_stopped"
	KeyStatusOutputFolderSet   = "status_output_folder_set"
	KeyStatusFolderNotFound    = "status_folder_not_found"
	KeyStatusQueueCleared      = "status_queue_cleared"
	KeyStatusHistoryCleared    = "status_history_cleared"
	KeyStatusHistoryError      = "status_history_error"
	KeyStatusSettingsSaved     = "status_settings_saved"
	KeyStatusInvalidRateLimit  = "status_invalid_rate_limit"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows the OS locale.
func (l *Localization) SetLanguage(language string) {
	if language == LanguageSystem || language == "" {
		language = systemLanguage()
	}

	if _, exists := l.texts[language]; exists {
		l.currentLanguage = language
	} else {
		l.currentLanguage = LanguageEnglish
	}
}

// systemLanguage returns the two-letter code of the OS locale
func systemLanguage() string {
	locale := lang.SystemLocale().LanguageString()
	code, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(code)
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle: "AV (Video Downloader)",

		KeyTabDownloader:     "Downloader",
		KeyTabQueue:          "Download Queue",
		KeyTabHistory:        "History",
		KeyTabSettings:       "Settings",
		KeyCurrentDownload:   "Current Download",
		KeyURLInput:          "1. URL Input",
		KeyDownloadOptions:   "2. Download Options",
		KeyVideoInformation:  "Video Information",
		KeyPlaylistItems:     "Playlist: %s",
		KeyDefaultFolder:     "Default Download Folder",
		KeyFilenameTemplate:  "Filename Template (yt-dlp format)",
		KeySpeedLimit:        "Download Speed Limit (e.g., 500K, 2M)",
		KeyInterfaceSettings: "Interface",

		KeyFetchInfo:          "Fetch Info",
		KeySelectOutputFolder: "Select Output Folder",
		KeyDownloadNow:        "Download Now",
		KeyAddToQueue:         "Add to Queue",
		KeyClearInfo:          "Clear Info",
		KeyStartQueue:         "Start Queue Download",
		KeyClearQueue:         "Clear Queue",
		KeyClearHistory:       "Clear History",
		KeyBrowse:             "Browse...",
		KeySaveSettings:       "Save Settings",
		KeyStop:               "Stop",
		KeyOpenFolder:         "Open Download Folder",
		KeySelectAll:          "Select All",
		KeySelectNone:         "Select None",

		KeyEnterURL:           "Enter or Drop Video/Playlist URL here",
		KeyFormat:             "Format:",
		KeyQuality:            "Quality:",
		KeyTitle:              "Title: %s",
		KeyDuration:           "Duration: %s",
		KeyEstimatedSize:      "Estimated File Size: %s",
		KeySpeed:              "Speed: %s",
		KeyETA:                "ETA: %s",
		KeyColumnTitle:        "Title",
		KeyColumnQuality:      "Quality",
		KeyColumnFormat:       "Format",
		KeyColumnURL:          "URL",
		KeyColumnDate:         "Date",
		KeyLanguage:           "Language",
		KeyDefaultFormat:      "Default Format",
		KeyOpenFolderOnFinish: "Open the download folder when all downloads finish",

		KeyStatusWelcome:           "Welcome! Drop a URL to begin.",
		KeyStatusFetching:          "Fetching information...",
		KeyStatusPlaylistFetched:   "Playlist fetched: %d videos.",
		KeyStatusVideoFetched:      "Video info fetched successfully!",
		KeyStatusFetchError:        "Error fetching info: %s",
		KeyStatusLiveStream:        "Live streams cannot be downloaded.",
		KeyStatusEmptyPlaylist:     "Playlist contains no valid videos.",
		KeyStatusPleaseEnterURL:    "Please enter a URL.",
		KeyStatusInvalidURL:        "Invalid URL: %s",
		KeyStatusNoItemsToAdd:      "No items selected to add.",
		KeyStatusNoItemsToDownload: "No items selected to download.",
		KeyStatusAddedToQueue:      "Added %d item(s) to the queue.",
		KeyStatusQueueEmpty:        "Download queue is empty.",
		KeyStatusBusy:              "A download is already in progress.",
		KeyStatusNoOutputPath:      "Please set a default download folder in Settings.",
		KeyStatusDownloading:       "Downloading: %s",
		KeyStatusResolving:         "Resolving: %s",
		KeyStatusPostProcessing:    "Post-processing (merging, converting)...",
		KeyStatusItemFailed:        "Failed to download %s: %s",
		KeyStatusAllCompleted:      "All downloads completed!",
		KeyStatusStopped:           "Download process stopped.",
		KeyStatusOutputFolderSet:   "Output folder set to: %s",
		KeyStatusFolderNotFound:    "Output folder not found.",
		KeyStatusQueueCleared:      "Queue cleared.",
		KeyStatusHistoryCleared:    "History cleared.",
		KeyStatusHistoryError:      "History error: %s",
		KeyStatusSettingsSaved:     "Settings saved successfully.",
		KeyStatusInvalidRateLimit:  "Invalid speed limit. Use values like 500K, 2M or 1.5G.",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle: "AV (Загрузчик видео)",

		KeyTabDownloader:     "Загрузчик",
		KeyTabQueue:          "Очередь загрузок",
		KeyTabHistory:        "История",
		KeyTabSettings:       "Настройки",
		KeyCurrentDownload:   "Текущая загрузка",
		KeyURLInput:          "1. Ввод URL",
		KeyDownloadOptions:   "2. Параметры загрузки",
		KeyVideoInformation:  "Информация о видео",
		KeyPlaylistItems:     "Плейлист: %s",
		KeyDefaultFolder:     "Папка загрузки по умолчанию",
		KeyFilenameTemplate:  "Шаблон имени файла (формат yt-dlp)",
		KeySpeedLimit:        "Ограничение скорости (например, 500K, 2M)",
		KeyInterfaceSettings: "Интерфейс",

		KeyFetchInfo:          "Получить информацию",
		KeySelectOutputFolder: "Выбрать папку",
		KeyDownloadNow:        "Скачать сейчас",
		KeyAddToQueue:         "В очередь",
		KeyClearInfo:          "Очистить",
		KeyStartQueue:         "Запустить очередь",
		KeyClearQueue:         "Очистить очередь",
		KeyClearHistory:       "Очистить историю",
		KeyBrowse:             "Обзор...",
		KeySaveSettings:       "Сохранить настройки",
		KeyStop:               "Стоп",
		KeyOpenFolder:         "Открыть папку загрузки",
		KeySelectAll:          "Выбрать все",
		KeySelectNone:         "Снять выбор",

		KeyEnterURL:           "Введите или перетащите URL видео/плейлиста",
		KeyFormat:             "Формат:",
		KeyQuality:            "Качество:",
		KeyTitle:              "Название: %s",
		KeyDuration:           "Длительность: %s",
		KeyEstimatedSize:      "Примерный размер: %s",
		KeySpeed:              "Скорость: %s",
		KeyETA:                "Осталось: %s",
		KeyColumnTitle:        "Название",
		KeyColumnQuality:      "Качество",
		KeyColumnFormat:       "Формат",
		KeyColumnURL:          "URL",
		KeyColumnDate:         "Дата",
		KeyLanguage:           "Язык",
		KeyDefaultFormat:      "Формат по умолчанию",
		KeyOpenFolderOnFinish: "Открывать папку загрузки после завершения",

		KeyStatusWelcome:           "Добро пожаловать! Перетащите URL, чтобы начать.",
		KeyStatusFetching:          "Получение информации...",
		KeyStatusPlaylistFetched:   "Плейлист получен: %d видео.",
		KeyStatusVideoFetched:      "Информация о видео получена!",
		KeyStatusFetchError:        "Ошибка получения информации: %s",
		KeyStatusLiveStream:        "Прямые трансляции нельзя скачать.",
		KeyStatusEmptyPlaylist:     "В плейлисте нет доступных видео.",
		KeyStatusPleaseEnterURL:    "Пожалуйста, введите URL.",
		KeyStatusInvalidURL:        "Неверный URL: %s",
		KeyStatusNoItemsToAdd:      "Не выбрано ни одного элемента.",
		KeyStatusNoItemsToDownload: "Не выбрано ни одного элемента для загрузки.",
		KeyStatusAddedToQueue:      "Добавлено в очередь: %d.",
		KeyStatusQueueEmpty:        "Очередь загрузок пуста.",
		KeyStatusBusy:              "Загрузка уже выполняется.",
		KeyStatusNoOutputPath:      "Укажите папку загрузки в настройках.",
		KeyStatusDownloading:       "Загрузка: %s",
		KeyStatusResolving:         "Получение данных: %s",
		KeyStatusPostProcessing:    "Обработка (объединение, конвертация)...",
		KeyStatusItemFailed:        "Не удалось скачать %s: %s",
		KeyStatusAllCompleted:      "Все загрузки завершены!",
		KeyStatusStopped:           "Загрузка остановлена.",
		KeyStatusOutputFolderSet:   "Папка загрузки: %s",
		KeyStatusFolderNotFound:    "Папка загрузки не найдена.",
		KeyStatusQueueCleared:      "Очередь очищена.",
		KeyStatusHistoryCleared:    "История очищена.",
		KeyStatusHistoryError:      "Ошибка истории: %s",
		KeyStatusSettingsSaved:     "Настройки сохранены.",
		KeyStatusInvalidRateLimit:  "Неверное ограничение скорости. Используйте значения вида 500K, 2M или 1.5G.",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle: "AV (Baixador de Vídeos)",

		KeyTabDownloader:     "Baixador",
		KeyTabQueue:          "Fila de Downloads",
		KeyTabHistory:        "Histórico",
		KeyTabSettings:       "Configurações",
		KeyCurrentDownload:   "Download Atual",
		KeyURLInput:          "1. URL",
		KeyDownloadOptions:   "2. Opções de Download",
		KeyVideoInformation:  "Informações do Vídeo",
		KeyPlaylistItems:     "Playlist: %s",
		KeyDefaultFolder:     "Pasta de Download Padrão",
		KeyFilenameTemplate:  "Modelo de Nome de Arquivo (formato yt-dlp)",
		KeySpeedLimit:        "Limite de Velocidade (ex.: 500K, 2M)",
		KeyInterfaceSettings: "Interface",

		KeyFetchInfo:          "Obter Informações",
		KeySelectOutputFolder: "Selecionar Pasta",
		KeyDownloadNow:        "Baixar Agora",
		KeyAddToQueue:         "Adicionar à Fila",
		KeyClearInfo:          "Limpar",
		KeyStartQueue:         "Iniciar Fila",
		KeyClearQueue:         "Limpar Fila",
		KeyClearHistory:       "Limpar Histórico",
		KeyBrowse:             "Navegar...",
		KeySaveSettings:       "Salvar Configurações",
		KeyStop:               "Parar",
		KeyOpenFolder:         "Abrir Pasta de Download",
		KeySelectAll:          "Selecionar Tudo",
		KeySelectNone:         "Limpar Seleção",

		KeyEnterURL:           "Digite ou arraste a URL do vídeo/playlist",
		KeyFormat:             "Formato:",
		KeyQuality:            "Qualidade:",
		KeyTitle:              "Título: %s",
		KeyDuration:           "Duração: %s",
		KeyEstimatedSize:      "Tamanho Estimado: %s",
		KeySpeed:              "Velocidade: %s",
		KeyETA:                "Restante: %s",
		KeyColumnTitle:        "Título",
		KeyColumnQuality:      "Qualidade",
		KeyColumnFormat:       "Formato",
		KeyColumnURL:          "URL",
		KeyColumnDate:         "Data",
		KeyLanguage:           "Idioma",
		KeyDefaultFormat:      "Formato Padrão",
		KeyOpenFolderOnFinish: "Abrir a pasta de download ao terminar",

		KeyStatusWelcome:           "Bem-vindo! Arraste uma URL para começar.",
		KeyStatusFetching:          "Obtendo informações...",
		KeyStatusPlaylistFetched:   "Playlist obtida: %d vídeos.",
		KeyStatusVideoFetched:      "Informações do vídeo obtidas!",
		KeyStatusFetchError:        "Erro ao obter informações: %s",
		KeyStatusLiveStream:        "Transmissões ao vivo não podem ser baixadas.",
		KeyStatusEmptyPlaylist:     "A playlist não contém vídeos válidos.",
		KeyStatusPleaseEnterURL:    "Por favor, digite uma URL.",
		KeyStatusInvalidURL:        "URL inválida: %s",
		KeyStatusNoItemsToAdd:      "Nenhum item selecionado para adicionar.",
		KeyStatusNoItemsToDownload: "Nenhum item selecionado para baixar.",
		KeyStatusAddedToQueue:      "%d item(ns) adicionado(s) à fila.",
		KeyStatusQueueEmpty:        "A fila de downloads está vazia.",
		KeyStatusBusy:              "Um download já está em andamento.",
		KeyStatusNoOutputPath:      "Defina uma pasta de download nas Configurações.",
		KeyStatusDownloading:       "Baixando: %s",
		KeyStatusResolving:         "Resolvendo: %s",
		KeyStatusPostProcessing:    "Pós-processamento (mesclando, convertendo)...",
		KeyStatusItemFailed:        "Falha ao baixar %s: %s",
		KeyStatusAllCompleted:      "Todos os downloads concluídos!",
		KeyStatusStopped:           "Download interrompido.",
		KeyStatusOutputFolderSet:   "Pasta de saída: %s",
		KeyStatusFolderNotFound:    "Pasta de saída não encontrada.",
		KeyStatusQueueCleared:      "Fila limpa.",
		KeyStatusHistoryCleared:    "Histórico limpo.",
		KeyStatusHistoryError:      "Erro no histórico: %s",
		KeyStatusSettingsSaved:     "Configurações salvas.",
		KeyStatusInvalidRateLimit:  "Limite de velocidade inválido. Use valores como 500K, 2M ou 1.5G.",
	}
}
