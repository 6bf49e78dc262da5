package domain

type Customer struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	CPF      string `json:"cpf"`
	Birthday Date   `json:"birthday"`
}
