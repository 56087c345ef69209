package checkoutRepository

const (
	queryCreateSale = `
		INSERT INTO sales (
			id,
			source,
			total,
			output_image,
			created_at
		) VALUES (
			:id,
			:source,
			:total,
			:output_image,
			:created_at
		)
	`

	queryCreateSaleItem = `
		INSERT INTO sale_items (
			sale_id,
			position,
			item,
			quantity,
			price,
			subtotal
		) VALUES (
			:sale_id,
			:position,
			:item,
			:quantity,
			:price,
			:subtotal
		)
	`

	queryUpdateArchiveURL = `
		UPDATE sales
		SET archive_url = :archive_url
		WHERE id = :id
	`

	queryGetSaleByID = `
		SELECT
			id,
			source,
			total,
			output_image,
			archive_url,
			created_at
		FROM sales
		WHERE id = :id
	`

	queryGetSaleItems = `
		SELECT
			sale_id,
			position,
			item,
			quantity,
			price,
			subtotal
		FROM sale_items
		WHERE sale_id IN (:sale_ids)
		ORDER BY sale_id, position
	`

	queryListSales = `
		SELECT
			id,
			source,
			total,
			output_image,
			archive_url,
			created_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryMonthlyTotals = `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*) AS sales,
			COALESCE(SUM(total), 0) AS revenue
		FROM sales
		WHERE created_at >= :since
		GROUP BY 1
		ORDER BY 1
	`

	queryMonthlyProducts = `
		SELECT
			to_char(date_trunc('month', s.created_at), 'YYYY-MM') AS month,
			i.item AS item,
			SUM(i.quantity) AS sold,
			SUM(i.subtotal) AS revenue
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.created_at >= :since
		GROUP BY 1, 2
		ORDER BY 1, revenue DESC, item
	`

	queryProductSales = `
		SELECT
			i.item AS item,
			SUM(i.quantity) AS sold,
			SUM(i.subtotal) AS revenue
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.created_at >= :from AND s.created_at < :to
		GROUP BY i.item
		ORDER BY revenue DESC, item
	`

	queryTotals = `
		SELECT
			COUNT(*) AS sales_count,
			COALESCE((
				SELECT SUM(i.quantity)
				FROM sale_items i
				JOIN sales si ON si.id = i.sale_id
				WHERE si.created_at >= :from AND si.created_at < :to
			), 0) AS total_items,
			COALESCE(SUM(total), 0) AS total_revenue
		FROM sales
		WHERE created_at >= :from AND created_at < :to
	`
)
