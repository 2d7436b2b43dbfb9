package telegram

import "strings"

// Reply keys.
const (
	msgInvalidArgs    = "invalid_args"
	msgSeeHelp        = "see_help"
	msgNoAssets       = "no_assets"
	msgAssets         = "assets"
	msgNoCommentator  = "no_commentator"
	msgCommentFailed  = "comment_failed"
	msgFileNotFound   = "file_not_found"
	msgNoDateColumn   = "no_date_column"
	msgUnknownAsset   = "unknown_asset"
	msgEmptySelection = "empty_selection"
	msgNoData         = "no_data"
	msgRequestFailed  = "request_failed"
	msgHelp           = "help"
)

var replies = map[string]map[string]string{
	"pt": {
		msgInvalidArgs:    "Argumentos inválidos: ",
		msgSeeHelp:        "Veja /help",
		msgNoAssets:       "Nenhum ativo no arquivo de dados.",
		msgAssets:         "Ativos:",
		msgNoCommentator:  "Comentário não configurado.",
		msgCommentFailed:  "Falha ao gerar comentário: ",
		msgFileNotFound:   "Arquivo de dados não encontrado.",
		msgNoDateColumn:   "O arquivo de dados não tem coluna de data.",
		msgUnknownAsset:   "Ativo desconhecido. Tente /assets",
		msgEmptySelection: "Sem dados para os anos selecionados.",
		msgNoData:         "Dados insuficientes para o gráfico.",
		msgRequestFailed:  "Falha na requisição: ",
		msgHelp: "Comandos\n\n" +
			"- /assets - Lista os ativos do arquivo de dados\n" +
			"- /price ASSET [ma] - Preços de fechamento de todos os anos, média móvel opcional\n" +
			"- /vol ASSET [21|42|63|252] - Volatilidade anualizada móvel (padrão 21 dias)\n" +
			"- /annual ASSET - Volatilidade anualizada por ano\n" +
			"- /season ASSET [1-12|full] - Sazonalidade de um mês ou do ano completo\n" +
			"- /explain ASSET [1-12] - Comentário curto sobre um mês (padrão: mês atual)\n",
	},
	"en": {
		msgInvalidArgs:    "Invalid arguments: ",
		msgSeeHelp:        "See /help",
		msgNoAssets:       "No assets in the data file.",
		msgAssets:         "Assets:",
		msgNoCommentator:  "Commentary is not configured.",
		msgCommentFailed:  "Commentary failed: ",
		msgFileNotFound:   "Data file not found.",
		msgNoDateColumn:   "The data file has no date column.",
		msgUnknownAsset:   "Unknown asset. Try /assets",
		msgEmptySelection: "No data for the selected years.",
		msgNoData:         "Not enough data to draw this chart.",
		msgRequestFailed:  "Request failed: ",
		msgHelp: "Commands\n\n" +
			"- /assets - List the assets of the data file\n" +
			"- /price ASSET [ma] - Closing prices of every year, optional moving average\n" +
			"- /vol ASSET [21|42|63|252] - Rolling annualised volatility (default 21 days)\n" +
			"- /annual ASSET - Annualised volatility per year\n" +
			"- /season ASSET [1-12|full] - Seasonal profile of a month or of the full year\n" +
			"- /explain ASSET [1-12] - Short commentary on a month profile (default: current month)\n",
	},
}

// localized returns the reply for key in locale. Unknown locales fall back
// to Portuguese, as the month labels do.
func localized(locale, key string) string {
	if m, ok := replies[strings.ToLower(locale)]; ok {
		return m[key]
	}
	return replies["pt"][key]
}
