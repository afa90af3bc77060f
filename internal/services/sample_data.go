package services

import "spendtrack/internal/core"

// sampleExpenses is the fixed demo catalog used for demos and tests.
// Records go through the normal Add path, so they still get ids,
// timestamps and normalization.
var sampleExpenses = []core.NewExpense{
	{Amount: core.Money{Cents: 2550}, Description: "Lunch at downtown cafe", Category: "Food", Date: "2024-01-15"},
	{Amount: core.Money{Cents: 4500}, Description: "Gas station fill-up", Category: "Transport", Date: "2024-01-16"},
	{Amount: core.Money{Cents: 1299}, Description: "Netflix monthly subscription", Category: "Entertainment", Date: "2024-01-16"},
	{Amount: core.Money{Cents: 15000}, Description: "Electricity bill payment", Category: "Bills", Date: "2024-01-17"},
	{Amount: core.Money{Cents: 850}, Description: "Morning coffee and pastry", Category: "Food", Date: "2024-01-17"},
	{Amount: core.Money{Cents: 7530}, Description: "Weekly grocery shopping", Category: "Food", Date: "2024-01-18"},
	{Amount: core.Money{Cents: 1500}, Description: "Bus pass monthly renewal", Category: "Transport", Date: "2024-01-19"},
	{Amount: core.Money{Cents: 8999}, Description: "Internet bill", Category: "Bills", Date: "2024-01-20"},
	{Amount: core.Money{Cents: 2275}, Description: "Pizza delivery dinner", Category: "Food", Date: "2024-01-20"},
	{Amount: core.Money{Cents: 3500}, Description: "Movie tickets for two", Category: "Entertainment", Date: "2024-01-21"},
	{Amount: core.Money{Cents: 12000}, Description: "Phone bill payment", Category: "Bills", Date: "2024-01-22"},
	{Amount: core.Money{Cents: 1850}, Description: "Lunch at work cafeteria", Category: "Food", Date: "2024-01-22"},
	{Amount: core.Money{Cents: 6500}, Description: "Car maintenance - oil change", Category: "Transport", Date: "2024-01-23"},
	{Amount: core.Money{Cents: 999}, Description: "Spotify premium subscription", Category: "Entertainment", Date: "2024-01-24"},
	{Amount: core.Money{Cents: 4280}, Description: "Dinner at Italian restaurant", Category: "Food", Date: "2024-01-24"},
	{Amount: core.Money{Cents: 20000}, Description: "Rent payment", Category: "Bills", Date: "2024-01-25"},
	{Amount: core.Money{Cents: 1425}, Description: "Fast food lunch", Category: "Food", Date: "2024-01-25"},
	{Amount: core.Money{Cents: 2800}, Description: "Taxi ride to airport", Category: "Transport", Date: "2024-01-26"},
	{Amount: core.Money{Cents: 5500}, Description: "Concert tickets", Category: "Entertainment", Date: "2024-01-27"},
	{Amount: core.Money{Cents: 9540}, Description: "Weekly grocery shopping", Category: "Food", Date: "2024-01-28"},
	{Amount: core.Money{Cents: 750}, Description: "Coffee shop visit", Category: "Food", Date: "2024-01-29"},
	{Amount: core.Money{Cents: 18000}, Description: "Car insurance payment", Category: "Bills", Date: "2024-01-30"},
	{Amount: core.Money{Cents: 3200}, Description: "Uber ride downtown", Category: "Transport", Date: "2024-01-31"},
	{Amount: core.Money{Cents: 1675}, Description: "Breakfast at diner", Category: "Food", Date: "2024-02-01"},
	{Amount: core.Money{Cents: 2499}, Description: "Video game purchase", Category: "Entertainment", Date: "2024-02-02"},
	{Amount: core.Money{Cents: 8500}, Description: "Water and sewer bill", Category: "Bills", Date: "2024-02-03"},
	{Amount: core.Money{Cents: 1950}, Description: "Sandwich and drink", Category: "Food", Date: "2024-02-03"},
	{Amount: core.Money{Cents: 5000}, Description: "Gas station payment", Category: "Transport", Date: "2024-02-04"},
	{Amount: core.Money{Cents: 3825}, Description: "Thai food takeout", Category: "Food", Date: "2024-02-05"},
	{Amount: core.Money{Cents: 1599}, Description: "Amazon Prime subscription", Category: "Entertainment", Date: "2024-02-06"},
	{Amount: core.Money{Cents: 12500}, Description: "Credit card payment", Category: "Bills", Date: "2024-02-07"},
	{Amount: core.Money{Cents: 1100}, Description: "Coffee and muffin", Category: "Food", Date: "2024-02-07"},
	{Amount: core.Money{Cents: 7250}, Description: "Grocery store shopping", Category: "Food", Date: "2024-02-08"},
	{Amount: core.Money{Cents: 2500}, Description: "Parking fee downtown", Category: "Transport", Date: "2024-02-09"},
	{Amount: core.Money{Cents: 4500}, Description: "Streaming service bundle", Category: "Entertainment", Date: "2024-02-10"},
	{Amount: core.Money{Cents: 16000}, Description: "Heating bill", Category: "Bills", Date: "2024-02-11"},
	{Amount: core.Money{Cents: 2975}, Description: "Chinese food delivery", Category: "Food", Date: "2024-02-11"},
	{Amount: core.Money{Cents: 4000}, Description: "Train ticket to city", Category: "Transport", Date: "2024-02-12"},
	{Amount: core.Money{Cents: 1350}, Description: "Fast casual lunch", Category: "Food", Date: "2024-02-13"},
	{Amount: core.Money{Cents: 7800}, Description: "Gym membership monthly", Category: "Health", Date: "2024-02-14"},
	{Amount: core.Money{Cents: 22000}, Description: "Home insurance payment", Category: "Bills", Date: "2024-02-15"},
	{Amount: core.Money{Cents: 2125}, Description: "Brunch at local cafe", Category: "Food", Date: "2024-02-15"},
	{Amount: core.Money{Cents: 3500}, Description: "Car wash and detailing", Category: "Transport", Date: "2024-02-16"},
	{Amount: core.Money{Cents: 5280}, Description: "Date night dinner", Category: "Food", Date: "2024-02-17"},
	{Amount: core.Money{Cents: 1999}, Description: "Book purchase online", Category: "Education", Date: "2024-02-18"},
	{Amount: core.Money{Cents: 9500}, Description: "Utility bill payment", Category: "Bills", Date: "2024-02-19"},
	{Amount: core.Money{Cents: 1700}, Description: "Lunch at food truck", Category: "Food", Date: "2024-02-19"},
	{Amount: core.Money{Cents: 6000}, Description: "Metro card refill", Category: "Transport", Date: "2024-02-20"},
	{Amount: core.Money{Cents: 3350}, Description: "Mexican restaurant dinner", Category: "Food", Date: "2024-02-21"},
	{Amount: core.Money{Cents: 1200}, Description: "Movie rental online", Category: "Entertainment", Date: "2024-02-22"},
}
