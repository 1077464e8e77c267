package catalog

import "github.com/vidalocal/discovery/internal/models"

// Embedded seed tables. Row order matters: keyword order is the scoring
// tie-break and city order is the geo-resolution tie-break, so these stay
// slices and new rows go at the end of their intent block.

func seedData() Data {
	return Data{
		States:         seedStates(),
		Cities:         seedCities(),
		Establishments: seedEstablishments(),
		Intents:        seedIntents(),
		Keywords:       seedKeywords(),
		TypeMappings:   seedTypeMappings(),
	}
}

func seedStates() []models.State {
	return []models.State{
		{ID: 1, Name: "Tocantins", UF: "TO"},
		{ID: 2, Name: "Goiás", UF: "GO"},
		{ID: 3, Name: "São Paulo", UF: "SP"},
		{ID: 4, Name: "Rio de Janeiro", UF: "RJ"},
		{ID: 5, Name: "Distrito Federal", UF: "DF"},
	}
}

func seedCities() []models.City {
	return []models.City{
		{ID: 1, StateID: 1, Name: "Gurupi", Slug: "gurupi", Active: true, Latitude: -11.7298, Longitude: -49.0678, Population: 87593},
		{ID: 2, StateID: 1, Name: "Palmas", Slug: "palmas", Active: true, Latitude: -10.1844, Longitude: -48.3336, Population: 306296},
		{ID: 3, StateID: 1, Name: "Araguaína", Slug: "araguaina", Active: true, Latitude: -7.1925, Longitude: -48.2078, Population: 183381},
		{ID: 6, StateID: 1, Name: "Porto Nacional", Slug: "porto-nacional", Active: true, Latitude: -10.7081, Longitude: -48.4172, Population: 53316},
		{ID: 7, StateID: 1, Name: "Paraíso do Tocantins", Slug: "paraiso-do-tocantins", Active: true, Latitude: -10.1753, Longitude: -48.8833, Population: 52521},
		{ID: 8, StateID: 1, Name: "Colinas do Tocantins", Slug: "colinas-do-tocantins", Active: true, Latitude: -8.0558, Longitude: -48.4764, Population: 35857},
		{ID: 9, StateID: 1, Name: "Araguatins", Slug: "araguatins", Active: true, Latitude: -5.6503, Longitude: -48.1250, Population: 36170},
		{ID: 10, StateID: 1, Name: "Guaraí", Slug: "guarai", Active: true, Latitude: -8.8344, Longitude: -48.5103, Population: 26403},
		{ID: 11, StateID: 1, Name: "Tocantinópolis", Slug: "tocantinopolis", Active: true, Latitude: -6.3233, Longitude: -47.4128, Population: 22619},
		{ID: 12, StateID: 1, Name: "Dianópolis", Slug: "dianopolis", Active: true, Latitude: -11.6286, Longitude: -46.8203, Population: 22234},
		{ID: 13, StateID: 5, Name: "Brasília", Slug: "brasilia", Active: true, Latitude: -15.7801, Longitude: -47.9292, Population: 3015268},
		{ID: 4, StateID: 2, Name: "Goiânia", Slug: "goiania", Active: true, Latitude: -16.6869, Longitude: -49.2648, Population: 1536097},
		{ID: 5, StateID: 3, Name: "São Paulo", Slug: "sao-paulo", Active: true, Latitude: -23.5505, Longitude: -46.6333, Population: 12330000},
	}
}

func seedEstablishments() []models.Establishment {
	return []models.Establishment{
		{ID: "e1", Name: "Espetinho do Adão B13", CategoryID: 1, SubCategory: "Espetinho", Address: "Av. Goiás, 1234, Centro", CityID: 1, Latitude: -11.7300, Longitude: -49.0680, Rating: 4.8, WhatsApp: "63999991234"},
		{ID: "e2", Name: "Delicias da Polly", CategoryID: 1, SubCategory: "Alimentação (restaurante, lanchonete, pizzaria)", Address: "Rua 7, 456, Setor Central", CityID: 1, Latitude: -11.7285, Longitude: -49.0665, Rating: 4.9, WhatsApp: "63999995678"},
		{ID: "e3", Name: "Mecânica do João", CategoryID: 6, SubCategory: "Oficina / Centro Automotivo", Address: "Av. Maranhão, 789", CityID: 1, Latitude: -11.7315, Longitude: -49.0695, Rating: 4.5, WhatsApp: "63999990000"},
		{ID: "e4", Name: "Pet Shop AuAu", CategoryID: 5, SubCategory: "Pet Shop (varejo)", Address: "Rua 10, 101", CityID: 1, Latitude: -11.7270, Longitude: -49.0650, Rating: 4.7, WhatsApp: "63999991111"},
		{ID: "e5", Name: "Farmácia Vida", CategoryID: 1, SubCategory: "Farmácia", Address: "Av. Pará, 202", CityID: 1, Latitude: -11.7320, Longitude: -49.0700, Rating: 4.6, WhatsApp: "63999992222"},
		{ID: "e6", Name: "Academia FitLife", CategoryID: 9, SubCategory: "Clube / Academia / Quadra", Address: "Rua 5, 303", CityID: 1, Latitude: -11.7260, Longitude: -49.0640, Rating: 4.4, WhatsApp: "63999993333"},
		{ID: "e7", Name: "Escola Aprender", CategoryID: 10, SubCategory: "Escola (infantil ao médio)", Address: "Av. Tocantins, 404", CityID: 1, Latitude: -11.7330, Longitude: -49.0710, Rating: 4.9, WhatsApp: "63999994444"},
		{ID: "e8", Name: "Loja de Variedades", CategoryID: 12, SubCategory: "Shopping / Loja de Departamento / Outlet", Address: "Rua do Comércio, 505", CityID: 1, Latitude: -11.7290, Longitude: -49.0670, Rating: 4.2, WhatsApp: "63999995555"},
		{ID: "e9", Name: "Barbearia do Zé", CategoryID: 4, SubCategory: "Salão de Beleza / Barbearia", Address: "Rua 8, 606", CityID: 1, Latitude: -11.7280, Longitude: -49.0660, Rating: 4.8, WhatsApp: "63999996666"},
		{ID: "e10", Name: "Clínica Vet Amigo", CategoryID: 5, SubCategory: "Clínica Veterinária", Address: "Av. Ceará, 707", CityID: 1, Latitude: -11.7340, Longitude: -49.0720, Rating: 4.7, WhatsApp: "63999997777"},
	}
}

func seedIntents() []models.SearchIntent {
	return []models.SearchIntent{
		{ID: 1, Name: "Alimentação", Active: true, Priority: 1},
		{ID: 2, Name: "Automotivo/Emergência", Active: true, Priority: 1},
		{ID: 3, Name: "Saúde/Médico", Active: true, Priority: 1},
		{ID: 4, Name: "Manutenção Residencial", Active: true, Priority: 2},
		{ID: 5, Name: "Serviços Públicos", Active: true, Priority: 2},
		{ID: 6, Name: "Beleza", Active: true, Priority: 3},
		{ID: 7, Name: "Pets", Active: true, Priority: 3},
		{ID: 8, Name: "Educação", Active: true, Priority: 3},
		{ID: 9, Name: "Social/Religioso", Active: true, Priority: 3},
		{ID: 10, Name: "Varejo/Compras", Active: true, Priority: 3},
		{ID: 11, Name: "Transporte Público", Active: true, Priority: 2},
		{ID: 12, Name: "Entretenimento", Active: true, Priority: 2},
	}
}

func seedKeywords() []models.KeywordEntry {
	return []models.KeywordEntry{
		{IntentID: 1, Keyword: "comer", Weight: 10},
		{IntentID: 1, Keyword: "fome", Weight: 10},
		{IntentID: 1, Keyword: "jantar", Weight: 8},
		{IntentID: 1, Keyword: "lanche", Weight: 8},
		{IntentID: 1, Keyword: "pizza", Weight: 10},
		{IntentID: 1, Keyword: "espetinho", Weight: 10},
		{IntentID: 1, Keyword: "jantinha", Weight: 10},
		{IntentID: 1, Keyword: "marmita", Weight: 10},
		{IntentID: 1, Keyword: "sorvete", Weight: 10},
		{IntentID: 1, Keyword: "sorveteria", Weight: 10},
		{IntentID: 1, Keyword: "acai", Weight: 10},
		{IntentID: 1, Keyword: "açai", Weight: 10},
		{IntentID: 1, Keyword: "açaiteria", Weight: 10},
		{IntentID: 1, Keyword: "acaiteria", Weight: 10},

		{IntentID: 2, Keyword: "pneu", Weight: 10},
		{IntentID: 2, Keyword: "furou", Weight: 10},
		{IntentID: 2, Keyword: "quebrou", Weight: 8},
		{IntentID: 2, Keyword: "bateria", Weight: 10},
		{IntentID: 2, Keyword: "reboque", Weight: 10},
		{IntentID: 2, Keyword: "guincho", Weight: 10},
		{IntentID: 2, Keyword: "borracharia", Weight: 10},
		{IntentID: 2, Keyword: "mecanico", Weight: 10},

		{IntentID: 3, Keyword: "doente", Weight: 10},
		{IntentID: 3, Keyword: "febre", Weight: 10},
		{IntentID: 3, Keyword: "dor", Weight: 8},
		{IntentID: 3, Keyword: "remedio", Weight: 10},
		{IntentID: 3, Keyword: "acidente", Weight: 10},
		{IntentID: 3, Keyword: "upa", Weight: 10},
		{IntentID: 3, Keyword: "farmacia", Weight: 10},
		{IntentID: 3, Keyword: "laboratorio", Weight: 8},
		{IntentID: 3, Keyword: "bombeiros", Weight: 10},

		{IntentID: 4, Keyword: "vazamento", Weight: 10},
		{IntentID: 4, Keyword: "encanador", Weight: 10},
		{IntentID: 4, Keyword: "eletricista", Weight: 10},
		{IntentID: 4, Keyword: "ar-condicionado", Weight: 10},

		{IntentID: 5, Keyword: "delegacia", Weight: 10},
		{IntentID: 5, Keyword: "forum", Weight: 10},
		{IntentID: 5, Keyword: "prefeitura", Weight: 10},
		{IntentID: 5, Keyword: "detran", Weight: 10},
		{IntentID: 5, Keyword: "detram", Weight: 10},

		{IntentID: 6, Keyword: "corte", Weight: 10},
		{IntentID: 6, Keyword: "manicure", Weight: 10},
		{IntentID: 6, Keyword: "estetica", Weight: 10},

		{IntentID: 7, Keyword: "pet", Weight: 10},
		{IntentID: 7, Keyword: "vet", Weight: 10},
		{IntentID: 7, Keyword: "banho", Weight: 10},
		{IntentID: 7, Keyword: "tosa", Weight: 10},

		{IntentID: 8, Keyword: "curso", Weight: 10},
		{IntentID: 8, Keyword: "escola", Weight: 10},
		{IntentID: 8, Keyword: "reforço", Weight: 10},
		{IntentID: 8, Keyword: "faculdade", Weight: 10},

		{IntentID: 9, Keyword: "igreja", Weight: 10},
		{IntentID: 9, Keyword: "evento", Weight: 10},
		{IntentID: 9, Keyword: "cultura", Weight: 10},

		{IntentID: 10, Keyword: "comprar", Weight: 10},
		{IntentID: 10, Keyword: "roupa", Weight: 10},
		{IntentID: 10, Keyword: "moveis", Weight: 10},
		{IntentID: 10, Keyword: "celular", Weight: 10},
		{IntentID: 10, Keyword: "presente", Weight: 10},

		{IntentID: 11, Keyword: "onibus", Weight: 10},
		{IntentID: 11, Keyword: "ônibus", Weight: 10},
		{IntentID: 11, Keyword: "terminal", Weight: 10},
		{IntentID: 11, Keyword: "circular", Weight: 8},
		{IntentID: 11, Keyword: "passagem", Weight: 8},
		{IntentID: 11, Keyword: "linha", Weight: 7},
		{IntentID: 11, Keyword: "transporte", Weight: 9},

		{IntentID: 12, Keyword: "cinema", Weight: 10},
		{IntentID: 12, Keyword: "teatro", Weight: 10},
		{IntentID: 12, Keyword: "show", Weight: 10},
		{IntentID: 12, Keyword: "diversao", Weight: 9},
		{IntentID: 12, Keyword: "diversão", Weight: 9},
		{IntentID: 12, Keyword: "parque", Weight: 10},
		{IntentID: 12, Keyword: "lazer", Weight: 9},
		{IntentID: 12, Keyword: "balada", Weight: 10},
		{IntentID: 12, Keyword: "festa", Weight: 10},
	}
}

func seedTypeMappings() []models.IntentTypeMapping {
	return []models.IntentTypeMapping{
		{IntentID: 1, TypeLabel: "Alimentação", Weight: 10},
		{IntentID: 1, TypeLabel: "Delivery", Weight: 8},
		{IntentID: 1, TypeLabel: "Sorveteria/Açaiteria", Weight: 10},
		{IntentID: 2, TypeLabel: "Oficina", Weight: 10},
		{IntentID: 2, TypeLabel: "Auto Peças", Weight: 8},
		{IntentID: 2, TypeLabel: "Guincho", Weight: 10},
		{IntentID: 3, TypeLabel: "Hospital", Weight: 10},
		{IntentID: 3, TypeLabel: "Farmácia", Weight: 10},
		{IntentID: 3, TypeLabel: "Laboratório", Weight: 8},
		{IntentID: 3, TypeLabel: "Bombeiros", Weight: 5},
		{IntentID: 11, TypeLabel: "Transporte Público (ônibus)", Weight: 10},
		{IntentID: 12, TypeLabel: "Espaço Cultural / Teatro / Cinema", Weight: 10},
		{IntentID: 12, TypeLabel: "Eventos / Casas de Show / Bar", Weight: 10},
		{IntentID: 12, TypeLabel: "Parques", Weight: 8},
	}
}
