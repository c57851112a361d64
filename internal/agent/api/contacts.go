package api

import (
	"net/url"

	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
)

const contactsPath = "/api/contacts"

func contactPath(id string) string {
	return contactsPath + "/" + url.PathEscape(id)
}

// CreateContact создаёт контакт текущего пользователя.
func (c *Client) CreateContact(token string, req models.CreateContactRequest) (models.Contact, error) {
	var resp models.Contact
	err := c.PostJSON(contactsPath, req, &resp, token)
	return resp, err
}

// ListContacts возвращает контакты пользователя, новые первыми.
func (c *Client) ListContacts(token string) ([]models.Contact, error) {
	var resp models.ContactsResponse
	if err := c.GetJSON(contactsPath, &resp, token); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

func (c *Client) GetContact(token, id string) (models.Contact, error) {
	var resp models.Contact
	err := c.GetJSON(contactPath(id), &resp, token)
	return resp, err
}

// UpdateContact меняет только переданные (не nil) поля.
func (c *Client) UpdateContact(token, id string, req models.UpdateContactRequest) (models.Contact, error) {
	var resp models.Contact
	err := c.PatchJSON(contactPath(id), req, &resp, token)
	return resp, err
}

func (c *Client) DeleteContact(token, id string) error {
	return c.DeleteJSON(contactPath(id), nil, token)
}
