package extract

import (
	"fmt"
	"math"
	"time"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

// Service executa o pipeline de extração: limpeza dos registros brutos,
// agrupamento por proximidade de data de liquidação e agregação das métricas
// por grupo.
type Service interface {
	// Process runs the full pipeline, emitting progress events followed by
	// exactly one terminal result or error event. It never returns partial
	// results: any internal fault aborts the run with a single error event.
	Process(records []domain.RawRecord, startDate *time.Time, emit func(domain.Event))

	// ProcessSync runs the pipeline discarding progress and returns the
	// final result directly.
	ProcessSync(records []domain.RawRecord, startDate *time.Time) (*domain.Result, error)
}

type service struct {
	dateColumn   string
	amountColumn string
}

// NewService cria uma nova instância do serviço de extração. As colunas
// informadas designam a data de liquidação e o valor a receber nos
// relatórios de entrada.
func NewService(dateColumn, amountColumn string) Service {
	return &service{
		dateColumn:   dateColumn,
		amountColumn: amountColumn,
	}
}

func (svc *service) Process(records []domain.RawRecord, startDate *time.Time, emit func(domain.Event)) {
	// Progresso é monotônico: eventos fora de ordem vindos das fases são
	// simplesmente descartados.
	last := -1
	progress := func(value int) {
		if value > last && value <= 100 {
			last = value
			emit(domain.Event{Kind: domain.EventProgress, Value: value})
		}
	}

	result, err := svc.run(records, startDate, progress)
	if err != nil {
		emit(domain.Event{Kind: domain.EventError, Message: err.Error()})
		return
	}
	progress(100)
	emit(domain.Event{Kind: domain.EventResult, Rows: result.Rows})
}

func (svc *service) ProcessSync(records []domain.RawRecord, startDate *time.Time) (*domain.Result, error) {
	return svc.run(records, startDate, func(int) {})
}

// run é a passada única do pipeline. Um pânico em qualquer fase é convertido
// em erro de execução, sem resultado parcial.
func (svc *service) run(records []domain.RawRecord, startDate *time.Time, progress func(int)) (result *domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("falha inesperada ao processar os dados: %v", r)
		}
	}()

	progress(0)

	var dateKey, amountKey string
	if len(records) > 0 {
		dateKey, amountKey = ResolveColumns(records[0], svc.dateColumn, svc.amountColumn)
	}

	cleaned := make([]domain.CleanedRecord, 0, len(records))
	for i, rec := range records {
		if i%100 == 0 {
			progress(scale(i, len(records), 0, 50))
		}
		if cr, ok := CleanRecord(rec, dateKey, amountKey); ok {
			cleaned = append(cleaned, cr)
		}
	}

	progress(50)
	groups := GroupRecords(cleaned, startDate, func(done, total int) {
		progress(scale(done, total, 50, 25))
	})

	progress(75)
	rows := Aggregate(groups, func(done, total int) {
		progress(scale(done, total, 75, 25))
	})

	return &domain.Result{Rows: rows, Groups: groups}, nil
}

// scale converte done/total para a faixa [base, base+span].
func scale(done, total, base, span int) int {
	if total <= 0 {
		return base
	}
	return base + int(math.Round(float64(done)/float64(total)*float64(span)))
}
