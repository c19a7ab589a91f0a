package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStageID    = errors.New("stage id desconhecido")
	ErrUnknownStage      = errors.New("pipeline/stage desconhecido")
	ErrInvalidStageTable = errors.New("tabela de stages inválida")
)

type Pipeline string

const (
	PipelineInbound  Pipeline = "inbound"
	PipelineOutbound Pipeline = "outbound"
)

type Stage string

const (
	StageIdentifiedLeads Stage = "identified_leads"
	StageOpportunities   Stage = "opportunities"
	StageOngoingTrials   Stage = "ongoing_trials"
	StageSubscriptions   Stage = "subscriptions"
)

// Pipelines e Stages formam o conjunto fechado aceito pelo diretório.
var (
	Pipelines = []Pipeline{PipelineInbound, PipelineOutbound}
	Stages    = []Stage{StageIdentifiedLeads, StageOpportunities, StageOngoingTrials, StageSubscriptions}
)

// StageID é o inteiro que o CRM usa para a posição de um deal.
type StageID int

type StagePosition struct {
	Pipeline Pipeline
	Stage    Stage
}

type StageTable map[Pipeline]map[Stage]StageID

// DefaultStageTable devolve os ids configurados no CRM. Esses números são contrato externo.
func DefaultStageTable() StageTable {
	return StageTable{
		PipelineInbound: {
			StageIdentifiedLeads: 18,
			StageOpportunities:   19,
			StageOngoingTrials:   20,
			StageSubscriptions:   21,
		},
		PipelineOutbound: {
			StageIdentifiedLeads: 22,
			StageOpportunities:   23,
			StageOngoingTrials:   24,
			StageSubscriptions:   25,
		},
	}
}

// StageDirectory traduz entre StageID e (pipeline, stage).
// Não muda depois de construído, então pode ser compartilhado entre syncs concorrentes.
type StageDirectory struct {
	forward StageTable
	reverse map[StageID]StagePosition
}

func NewStageDirectory(table StageTable) (*StageDirectory, error) {
	d := &StageDirectory{
		forward: make(StageTable, len(Pipelines)),
		reverse: make(map[StageID]StagePosition, len(Pipelines)*len(Stages)),
	}

	for pipeline := range table {
		if !isKnownPipeline(pipeline) {
			return nil, fmt.Errorf("%w: pipeline %q", ErrInvalidStageTable, pipeline)
		}
	}

	for _, pipeline := range Pipelines {
		stages, ok := table[pipeline]
		if !ok {
			return nil, fmt.Errorf("%w: pipeline %q ausente", ErrInvalidStageTable, pipeline)
		}
		for stage := range stages {
			if !isKnownStage(stage) {
				return nil, fmt.Errorf("%w: stage %q em %q", ErrInvalidStageTable, stage, pipeline)
			}
		}

		d.forward[pipeline] = make(map[Stage]StageID, len(Stages))
		for _, stage := range Stages {
			id, ok := stages[stage]
			if !ok {
				return nil, fmt.Errorf("%w: stage %q ausente em %q", ErrInvalidStageTable, stage, pipeline)
			}
			if prev, dup := d.reverse[id]; dup {
				return nil, fmt.Errorf("%w: id %d usado por %s/%s e %s/%s",
					ErrInvalidStageTable, id, prev.Pipeline, prev.Stage, pipeline, stage)
			}
			d.forward[pipeline][stage] = id
			d.reverse[id] = StagePosition{Pipeline: pipeline, Stage: stage}
		}
	}

	return d, nil
}

// DefaultStageDirectory monta o diretório sobre DefaultStageTable.
func DefaultStageDirectory() *StageDirectory {
	d, err := NewStageDirectory(DefaultStageTable())
	if err != nil {
		panic(err)
	}
	return d
}

func (d *StageDirectory) StageIDFor(pipeline Pipeline, stage Stage) (StageID, error) {
	id, ok := d.forward[pipeline][stage]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownStage, pipeline, stage)
	}
	return id, nil
}

func (d *StageDirectory) PositionOf(id StageID) (StagePosition, error) {
	pos, ok := d.reverse[id]
	if !ok {
		return StagePosition{}, fmt.Errorf("%w: %d", ErrUnknownStageID, id)
	}
	return pos, nil
}

func (d *StageDirectory) PipelineOf(id StageID) (Pipeline, error) {
	pos, err := d.PositionOf(id)
	if err != nil {
		return "", err
	}
	return pos.Pipeline, nil
}

func (d *StageDirectory) StageOf(id StageID) (Stage, error) {
	pos, err := d.PositionOf(id)
	if err != nil {
		return "", err
	}
	return pos.Stage, nil
}

// Table devolve uma cópia da tabela direta.
func (d *StageDirectory) Table() StageTable {
	out := make(StageTable, len(d.forward))
	for pipeline, stages := range d.forward {
		out[pipeline] = make(map[Stage]StageID, len(stages))
		for stage, id := range stages {
			out[pipeline][stage] = id
		}
	}
	return out
}

func isKnownPipeline(p Pipeline) bool {
	for _, known := range Pipelines {
		if p == known {
			return true
		}
	}
	return false
}

func isKnownStage(s Stage) bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}
