package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/purchasestore/shein-finance-extract/internal/api/responses"
	"github.com/purchasestore/shein-finance-extract/internal/core/extract"
	"github.com/purchasestore/shein-finance-extract/internal/domain"
	"github.com/purchasestore/shein-finance-extract/internal/jobs"
	"github.com/purchasestore/shein-finance-extract/internal/spreadsheet"
)

// startDateLayout é o formato do campo de formulário startDate (dd/MM/yyyy),
// igual ao seletor de datas do frontend.
const startDateLayout = "02/01/2006"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// o gateway na frente do serviço cuida de origem/autenticação
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ExtractHandler lida com as requisições da API de extração.
type ExtractHandler struct {
	service extract.Service
	jobs    *jobs.Manager
	logger  *zap.Logger
}

// NewExtractHandler cria um novo handler de extração.
func NewExtractHandler(service extract.Service, jobsManager *jobs.Manager, logger *zap.Logger) *ExtractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractHandler{
		service: service,
		jobs:    jobsManager,
		logger:  logger,
	}
}

// readUpload extrai os registros brutos e a data de início opcional do
// formulário multipart. Respostas de erro já são enviadas aqui; o chamador
// só segue quando ok=true.
func (h *ExtractHandler) readUpload(c *gin.Context) (records []domain.RawRecord, startDate *time.Time, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de relatório (.xlsx, .xls ou .zip) não encontrado ou inválido")
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo enviado")
		return nil, nil, false
	}
	defer file.Close()

	records, err = spreadsheet.ReadRecords(file, fileHeader.Filename)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao ler o arquivo enviado", err.Error())
		return nil, nil, false
	}

	if raw := c.PostForm("startDate"); raw != "" {
		t, err := time.Parse(startDateLayout, raw)
		if err != nil {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Data de início inválida: %q; use dd/MM/yyyy", raw))
			return nil, nil, false
		}
		startDate = &t
	}

	return records, startDate, true
}

// HandleProcess processa o relatório de forma síncrona e devolve as linhas
// formatadas junto com os grupos numéricos.
func (h *ExtractHandler) HandleProcess(c *gin.Context) {
	records, startDate, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.service.ProcessSync(records, startDate)
	if err != nil {
		h.logger.Error("falha ao processar relatório", zap.Error(err))
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar os dados", err.Error())
		return
	}

	responses.Success(c, result, "Dados processados com sucesso")
}

// HandleExportXLSX processa o relatório e devolve a tabela final como .xlsx.
func (h *ExtractHandler) HandleExportXLSX(c *gin.Context) {
	records, startDate, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.service.ProcessSync(records, startDate)
	if err != nil {
		h.logger.Error("falha ao processar relatório", zap.Error(err))
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar os dados", err.Error())
		return
	}

	output, err := spreadsheet.BuildResultXLSX(result.Rows)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha final", err.Error())
		return
	}

	fileName := fmt.Sprintf("ProcessedData_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", output)
}

// HandleExportPDF processa o relatório e devolve a tabela final como PDF.
func (h *ExtractHandler) HandleExportPDF(c *gin.Context) {
	records, startDate, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.service.ProcessSync(records, startDate)
	if err != nil {
		h.logger.Error("falha ao processar relatório", zap.Error(err))
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar os dados", err.Error())
		return
	}

	output, err := spreadsheet.BuildResultPDF(result.Rows)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o PDF final", err.Error())
		return
	}

	fileName := fmt.Sprintf("ProcessedData_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/pdf", output)
}

// HandleCreateJob inicia um processamento assíncrono e devolve o id do job.
// O progresso sai pelo endpoint de eventos.
func (h *ExtractHandler) HandleCreateJob(c *gin.Context) {
	records, startDate, ok := h.readUpload(c)
	if !ok {
		return
	}

	job := h.jobs.Create()
	go h.service.Process(records, startDate, job.Publish)

	h.logger.Info("job de extração iniciado",
		zap.String("job_id", job.ID),
		zap.Int("records", len(records)))

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID})
}

// HandleJobEvents transmite os eventos de um job por WebSocket: primeiro o
// histórico, depois os eventos ao vivo, encerrando após o evento terminal.
func (h *ExtractHandler) HandleJobEvents(c *gin.Context) {
	job, ok := h.jobs.Get(c.Param("id"))
	if !ok {
		responses.Error(c, http.StatusNotFound, "Job não encontrado")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("falha no upgrade do websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	history, events, cancel := job.Subscribe()
	defer cancel()

	for _, ev := range history {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
		if ev.Terminal() {
			return
		}
	}

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
		if ev.Terminal() {
			return
		}
	}
}
