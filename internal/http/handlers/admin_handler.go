package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"techmart/internal/domain"
	applog "techmart/internal/log"
	"techmart/internal/repos"
	"techmart/internal/services"
	"techmart/internal/validate"
)

// Shown next to the image field of notebook/smartphone forms.
const imageWarning = "При загрузке изображения с разрешением больше 400x400 оно будет обрезано до 800x600!"

type AdminHandler struct {
	Cats      *repos.CategoryRepo
	Prods     *repos.ProductRepo
	Products  *services.ProductService
	Carts     *repos.CartRepo
	Customers *repos.CustomerRepo
	Orders    *repos.OrderRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// ---------- Categories ----------

func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	name, okName := validate.Title(c.FormValue("name"))
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	if !okName || !okSlug {
		return c.Status(400).SendString("invalid name or slug")
	}
	if _, err := h.Cats.Create(name, slug); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"slug": slug})
		return c.Status(400).SendString("could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"slug": slug})
	return c.Redirect("/admin/categories")
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	name, okName := validate.Title(c.FormValue("name"))
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	if !okName || !okSlug {
		return c.Status(400).SendString("invalid name or slug")
	}
	if err := h.Cats.Update(id, name, slug); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category_id": id})
		return c.Status(400).SendString("could not update category")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// DeleteCategory removes the category and, by schema cascade, its products.
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.Delete(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category_id": id})
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// ---------- Notebooks ----------

func (h *AdminHandler) Notebooks(c *fiber.Ctx) error {
	rows, err := h.Prods.LatestNotebooks(500)
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load notebooks"})
	}
	return render(c, "admin_notebooks", fiber.Map{"Notebooks": rows})
}

// NotebookForm serves both the create form and, with ?id=, the edit form.
// The category select only offers the notebook category.
func (h *AdminHandler) NotebookForm(c *fiber.Ctx) error {
	cats, err := h.Cats.ListBySlug("notebooks")
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	data := fiber.Map{"Categories": cats, "ImageWarning": imageWarning}
	if id, ok := validate.ID(c.Query("id")); ok {
		p, err := h.Prods.NotebookByID(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Notebook not found"})
		}
		data["P"] = p
	}
	return render(c, "admin_notebook_form", data)
}

func (h *AdminHandler) SaveNotebook(c *fiber.Ctx) error {
	core, ok := productCore(c)
	if !ok {
		return c.Status(400).SendString("invalid product fields")
	}
	p := domain.Notebook{
		Product:           core,
		Diagonal:          c.FormValue("diagonal"),
		DisplayType:       c.FormValue("display_type"),
		Processor:         c.FormValue("processor"),
		RAM:               c.FormValue("ram"),
		Video:             c.FormValue("video"),
		TimeWithoutCharge: c.FormValue("time_without_charge"),
	}
	if p.ID != 0 {
		prev, err := h.Prods.NotebookByID(p.ID)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Notebook not found"})
		}
		p.Image = prev.Image
	}

	up, err := uploadFrom(c)
	if err != nil {
		return c.Status(400).SendString("could not read image upload")
	}
	id, err := h.Products.SaveNotebook(p, up)
	if err != nil {
		applog.Error(c, "admin.notebooks.save.fail", err, map[string]any{"slug": p.Slug})
		return c.Status(400).SendString("could not save notebook: " + err.Error())
	}
	applog.Audit(c, "admin.notebooks.save", map[string]any{"notebook_id": id})
	return c.Redirect("/admin/notebooks")
}

func (h *AdminHandler) DeleteNotebook(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.DeleteNotebook(id); err != nil {
		applog.Error(c, "admin.notebooks.delete.fail", err, map[string]any{"notebook_id": id})
		return c.Status(400).SendString("could not delete notebook")
	}
	applog.Audit(c, "admin.notebooks.delete", map[string]any{"notebook_id": id})
	return c.Redirect("/admin/notebooks")
}

// ---------- Smartphones ----------

func (h *AdminHandler) Smartphones(c *fiber.Ctx) error {
	rows, err := h.Prods.LatestSmartphones(500)
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load smartphones"})
	}
	return render(c, "admin_smartphones", fiber.Map{"Smartphones": rows})
}

func (h *AdminHandler) SmartphoneForm(c *fiber.Ctx) error {
	cats, err := h.Cats.ListBySlug("smartphones")
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	data := fiber.Map{"Categories": cats, "ImageWarning": imageWarning}
	if id, ok := validate.ID(c.Query("id")); ok {
		p, err := h.Prods.SmartphoneByID(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Smartphone not found"})
		}
		data["P"] = p
	}
	return render(c, "admin_smartphone_form", data)
}

func (h *AdminHandler) SaveSmartphone(c *fiber.Ctx) error {
	core, ok := productCore(c)
	if !ok {
		return c.Status(400).SendString("invalid product fields")
	}
	p := domain.Smartphone{
		Product:      core,
		Diagonal:     c.FormValue("diagonal"),
		Resolution:   c.FormValue("resolution"),
		Processor:    c.FormValue("processor"),
		RAM:          c.FormValue("ram"),
		Accum:        c.FormValue("accum"),
		SD:           c.FormValue("sd") == "on" || c.FormValue("sd") == "1",
		MemoryVolume: c.FormValue("memory_volume"),
		MainCamera:   c.FormValue("main_camera"),
		FrontCamera:  c.FormValue("front_camera"),
	}
	if p.ID != 0 {
		prev, err := h.Prods.SmartphoneByID(p.ID)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Smartphone not found"})
		}
		p.Image = prev.Image
	}

	up, err := uploadFrom(c)
	if err != nil {
		return c.Status(400).SendString("could not read image upload")
	}
	id, err := h.Products.SaveSmartphone(p, up)
	if err != nil {
		applog.Error(c, "admin.smartphones.save.fail", err, map[string]any{"slug": p.Slug})
		return c.Status(400).SendString("could not save smartphone: " + err.Error())
	}
	applog.Audit(c, "admin.smartphones.save", map[string]any{"smartphone_id": id})
	return c.Redirect("/admin/smartphones")
}

func (h *AdminHandler) DeleteSmartphone(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.DeleteSmartphone(id); err != nil {
		applog.Error(c, "admin.smartphones.delete.fail", err, map[string]any{"smartphone_id": id})
		return c.Status(400).SendString("could not delete smartphone")
	}
	applog.Audit(c, "admin.smartphones.delete", map[string]any{"smartphone_id": id})
	return c.Redirect("/admin/smartphones")
}

// ---------- Carts, line items, customers, orders ----------

func (h *AdminHandler) CartsPage(c *fiber.Ctx) error {
	carts, err := h.Carts.List()
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load carts"})
	}
	items, err := h.Carts.ListItems()
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load cart items"})
	}
	return render(c, "admin_carts", fiber.Map{"Carts": carts, "Items": items})
}

func (h *AdminHandler) CustomersPage(c *fiber.Ctx) error {
	custs, err := h.Customers.List()
	if err != nil {
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load customers"})
	}
	return render(c, "admin_customers", fiber.Map{"Customers": custs})
}

func (h *AdminHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	phone, okPhone := validate.Phone(c.FormValue("phone_number"))
	if !okPhone {
		return c.Status(400).SendString("invalid phone number")
	}
	cust, err := h.Customers.ByID(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Customer not found"})
	}
	cust.PhoneNumber = phone
	cust.Address = c.FormValue("address")
	if err := h.Customers.Update(cust); err != nil {
		return c.Status(400).SendString("could not update customer")
	}
	applog.Audit(c, "admin.customers.update", map[string]any{"customer_id": id})
	return c.Redirect("/admin/customers")
}

func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// ---------- helpers ----------

// productCore reads the shared product fields of a notebook/smartphone form.
func productCore(c *fiber.Ctx) (domain.Product, bool) {
	title, okTitle := validate.Title(c.FormValue("title"))
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	priceStr, okPrice := validate.Price(c.FormValue("price"))
	catID, okCat := validate.ID(c.FormValue("category_id"))
	if !okTitle || !okSlug || !okPrice || !okCat {
		return domain.Product{}, false
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return domain.Product{}, false
	}
	p := domain.Product{
		CategoryID:  catID,
		Title:       title,
		Slug:        slug,
		Description: c.FormValue("description"),
		Price:       price,
	}
	if id, ok := validate.ID(c.FormValue("id")); ok {
		p.ID = id
	}
	return p, true
}

// uploadFrom returns the form's image file, or nil when none was sent.
func uploadFrom(c *fiber.Ctx) (*services.Upload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no file field in the form
	}
	data, err := readAll(fh)
	if err != nil {
		return nil, err
	}
	return &services.Upload{Name: fh.Filename, Data: data}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
