package ui

import (
	"time"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store/memory"
)

func row(id string, fields record.Fields) record.Record {
	return record.Record{ID: record.ID(id), Fields: fields}
}

// StaticDemo fills b with a small data set for trying the console without a
// database.
func StaticDemo(b *memory.Backend) {
	b.Seed(entities.Cities,
		row("1", record.Fields{"nome": "São Paulo", "uf": "SP"}),
		row("2", record.Fields{"nome": "Belo Horizonte", "uf": "MG"}),
		row("3", record.Fields{"nome": "Goiânia", "uf": "GO"}),
	)
	b.Seed(entities.People,
		row("1", record.Fields{"nome": "Ana Souza", "telefone": "11 99999-0001", "idade": 34.0, "sexo": "F", "bairro": "Centro", "cidade_id": record.ID("1")}),
		row("2", record.Fields{"nome": "João Pereira", "telefone": "31 98888-0002", "idade": 52.0, "sexo": "M", "cidade_id": record.ID("2")}),
		row("3", record.Fields{"nome": "Márcia Lima", "idade": 27.0, "sexo": "F", "cidade_id": record.ID("3")}),
		row("4", record.Fields{"nome": "Otávio Reis", "sexo": "M"}),
	)
	b.Seed(entities.Attendants,
		row("1", record.Fields{"nome": "Beatriz Nunes", "telefone": "11 97777-0003"}),
		row("2", record.Fields{"nome": "Carlos Dias"}),
	)
	b.Seed(entities.AttendanceTypes,
		row("1", record.Fields{"descricao_atendimento": "Acolhimento"}),
		row("2", record.Fields{"descricao_atendimento": "Orientação"}),
		row("3", record.Fields{"descricao_atendimento": "Retorno"}),
	)

	day := time.Now().Truncate(24 * time.Hour)
	b.Seed(entities.Attendances,
		row("1", record.Fields{"pessoa_id": record.ID("1"), "atendente_id": record.ID("1"), "tipo_atendimento_id": record.ID("1"),
			"data_atendimento": day.Add(-72*time.Hour + 9*time.Hour), "orientacao": "Primeira conversa."}),
		row("2", record.Fields{"pessoa_id": record.ID("2"), "atendente_id": record.ID("2"), "tipo_atendimento_id": record.ID("2"),
			"data_atendimento": day.Add(-24*time.Hour + 14*time.Hour)}),
		row("3", record.Fields{"pessoa_id": record.ID("1"), "atendente_id": record.ID("1"), "tipo_atendimento_id": record.ID("3"),
			"data_atendimento": day.Add(10 * time.Hour), "observacao": "Trouxe documentos."}),
	)
	b.Seed(entities.Users,
		row("8a7c1f0e-4b8e-4d36-9a55-0d6f7d1c2a01", record.Fields{"username": "admin", "ativo": true}),
		row("b2d4e6f8-1a3c-4e5f-8b7d-9c0e1f2a3b02", record.Fields{"username": "recepcao", "ativo": false}),
	)
}
