package utils

import "time"

// DateLayout é o formato de data aceito pelo provedor de transações
const DateLayout = time.DateOnly

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatGeneratedAt formata o horário de geração exibido na mensagem semanal
func FormatGeneratedAt(t time.Time) string {
	return t.UTC().Format("2006-01-02 at 15:04")
}
