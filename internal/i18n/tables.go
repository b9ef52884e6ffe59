package i18n

var builtin = map[string]map[string]string{
	"pt": {
		"app_name":           "OllamaGUI",
		"welcome":            "Bem-vindo ao OllamaGUI",
		"welcome_message":    "Converse com modelos de IA localmente",
		"type_message":       "Digite sua mensagem...",
		"send":               "Enviar",
		"typing":             "Digitando...",
		"select_model":       "Selecionar Modelo",
		"select_language":    "Selecionar Idioma",
		"new_chat":           "Nova Conversa",
		"clear_chat":         "Limpar Chat",
		"export_chat":        "Exportar",
		"settings":           "Configurações",
		"theme":              "Tema",
		"light":              "Claro",
		"dark":               "Escuro",
		"auto":               "Automático",
		"connection_status":  "Status da Conexão",
		"connected":          "Conectado",
		"disconnected":       "Desconectado",
		"loading_models":     "Carregando modelos...",
		"model_loaded":       "Modelo carregado",
		"error_loading":      "Erro ao carregar",
		"download_model":     "Baixar Modelo",
		"available_models":   "Modelos Disponíveis",
		"download_started":   "Download iniciado",
		"download_complete":  "Download completo",
		"download_error":     "Erro no download",
		"download_not_found": "Download não encontrado",
		"download_canceled":  "Download cancelado",
		"search_models":      "Buscar Modelos",
		"popular_models":     "Modelos Populares",
		"new_models":         "Novos Modelos",
		"model_size":         "Tamanho",
		"model_pulls":        "Downloads",
		"install":            "Instalar",
		"installing":         "Instalando...",
		"installed":          "Instalado",
		"offline_response":   "⚠️ Ollama não está disponível. \n\nMensagem que seria enviada para %s: %s\n\nPara usar modelos reais, execute: ollama serve",
		"system_prompt":      "Você é um assistente de IA útil e inteligente. \nResponda de forma clara e precisa no idioma do usuário.",
	},
	"en": {
		"app_name":           "OllamaGUI",
		"welcome":            "Welcome to OllamaGUI",
		"welcome_message":    "Chat with local AI models",
		"type_message":       "Type your message...",
		"send":               "Send",
		"typing":             "Typing...",
		"select_model":       "Select Model",
		"select_language":    "Select Language",
		"new_chat":           "New Chat",
		"clear_chat":         "Clear Chat",
		"export_chat":        "Export",
		"settings":           "Settings",
		"theme":              "Theme",
		"light":              "Light",
		"dark":               "Dark",
		"auto":               "Auto",
		"connection_status":  "Connection Status",
		"connected":          "Connected",
		"disconnected":       "Disconnected",
		"loading_models":     "Loading models...",
		"model_loaded":       "Model loaded",
		"error_loading":      "Error loading",
		"download_model":     "Download Model",
		"available_models":   "Available Models",
		"download_started":   "Download started",
		"download_complete":  "Download complete",
		"download_error":     "Download error",
		"download_not_found": "Download not found",
		"download_canceled":  "Download canceled",
		"search_models":      "Search Models",
		"popular_models":     "Popular Models",
		"new_models":         "New Models",
		"model_size":         "Size",
		"model_pulls":        "Pulls",
		"install":            "Install",
		"installing":         "Installing...",
		"installed":          "Installed",
		"offline_response":   "⚠️ Ollama is not available. \n\nMessage that would be sent to %s: %s\n\nTo use real models, run: ollama serve",
		"system_prompt":      "You are a helpful and intelligent AI assistant.\nRespond clearly and accurately in the user's language.",
	},
	"es": {
		"app_name":           "OllamaGUI",
		"welcome":            "Bienvenido a OllamaGUI",
		"welcome_message":    "Chatea con modelos de IA locales",
		"type_message":       "Escribe tu mensaje...",
		"send":               "Enviar",
		"typing":             "Escribiendo...",
		"select_model":       "Seleccionar Modelo",
		"select_language":    "Seleccionar Idioma",
		"new_chat":           "Nueva Conversación",
		"clear_chat":         "Limpiar Chat",
		"export_chat":        "Exportar",
		"settings":           "Configuración",
		"theme":              "Tema",
		"light":              "Claro",
		"dark":               "Oscuro",
		"auto":               "Automático",
		"connection_status":  "Estado de Conexión",
		"connected":          "Conectado",
		"disconnected":       "Desconectado",
		"loading_models":     "Cargando modelos...",
		"model_loaded":       "Modelo cargado",
		"error_loading":      "Error al cargar",
		"download_model":     "Descargar Modelo",
		"available_models":   "Modelos Disponibles",
		"download_started":   "Descarga iniciada",
		"download_complete":  "Descarga completada",
		"download_error":     "Error en descarga",
		"download_not_found": "Descarga no encontrada",
		"download_canceled":  "Descarga cancelada",
		"search_models":      "Buscar Modelos",
		"popular_models":     "Modelos Populares",
		"new_models":         "Modelos Nuevos",
		"model_size":         "Tamaño",
		"model_pulls":        "Descargas",
		"install":            "Instalar",
		"installing":         "Instalando...",
		"installed":          "Instalado",
		"offline_response":   "⚠️ Ollama no está disponible. \n\nMensaje que se enviaría a %s: %s\n\nPara usar modelos reales, ejecute: ollama serve",
		"system_prompt":      "Eres un asistente de IA útil e inteligente.\nResponde de forma clara y precisa en el idioma del usuario.",
	},
}
