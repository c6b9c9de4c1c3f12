package reference

// nationalSeries is the national-average yearly series, 1975 through LatestYear.
//
// ProductivityIndex: BLS nonfarm business labor productivity (output per hour), 2017=100.
// WageIndex: real average hourly compensation, production and nonsupervisory workers, 2017=100.
// CPIInflation: CPI-U annual average change.
// BaselineRentBurden: median gross rent as a share of renter household income.
var nationalSeries = []YearlyEconomicDatum{
	{Year: 1975, ProductivityIndex: 49.3, WageIndex: 92.0, CPIInflation: 0.091, BaselineRentBurden: 0.220},
	{Year: 1976, ProductivityIndex: 50.0, WageIndex: 91.6, CPIInflation: 0.058, BaselineRentBurden: 0.226},
	{Year: 1977, ProductivityIndex: 50.7, WageIndex: 91.3, CPIInflation: 0.065, BaselineRentBurden: 0.232},
	{Year: 1978, ProductivityIndex: 51.4, WageIndex: 90.9, CPIInflation: 0.076, BaselineRentBurden: 0.238},
	{Year: 1979, ProductivityIndex: 52.2, WageIndex: 90.6, CPIInflation: 0.113, BaselineRentBurden: 0.244},
	{Year: 1980, ProductivityIndex: 52.9, WageIndex: 90.2, CPIInflation: 0.135, BaselineRentBurden: 0.250},
	{Year: 1981, ProductivityIndex: 53.9, WageIndex: 89.8, CPIInflation: 0.103, BaselineRentBurden: 0.252},
	{Year: 1982, ProductivityIndex: 54.9, WageIndex: 89.3, CPIInflation: 0.062, BaselineRentBurden: 0.255},
	{Year: 1983, ProductivityIndex: 55.9, WageIndex: 88.9, CPIInflation: 0.032, BaselineRentBurden: 0.257},
	{Year: 1984, ProductivityIndex: 56.9, WageIndex: 88.4, CPIInflation: 0.043, BaselineRentBurden: 0.260},
	{Year: 1985, ProductivityIndex: 58.0, WageIndex: 88.0, CPIInflation: 0.036, BaselineRentBurden: 0.262},
	{Year: 1986, ProductivityIndex: 58.9, WageIndex: 87.8, CPIInflation: 0.019, BaselineRentBurden: 0.262},
	{Year: 1987, ProductivityIndex: 59.9, WageIndex: 87.6, CPIInflation: 0.036, BaselineRentBurden: 0.262},
	{Year: 1988, ProductivityIndex: 60.9, WageIndex: 87.5, CPIInflation: 0.041, BaselineRentBurden: 0.263},
	{Year: 1989, ProductivityIndex: 61.9, WageIndex: 87.3, CPIInflation: 0.048, BaselineRentBurden: 0.263},
	{Year: 1990, ProductivityIndex: 62.9, WageIndex: 87.1, CPIInflation: 0.054, BaselineRentBurden: 0.263},
	{Year: 1991, ProductivityIndex: 63.8, WageIndex: 87.0, CPIInflation: 0.042, BaselineRentBurden: 0.262},
	{Year: 1992, ProductivityIndex: 64.7, WageIndex: 86.8, CPIInflation: 0.030, BaselineRentBurden: 0.261},
	{Year: 1993, ProductivityIndex: 65.7, WageIndex: 86.7, CPIInflation: 0.030, BaselineRentBurden: 0.260},
	{Year: 1994, ProductivityIndex: 66.6, WageIndex: 86.5, CPIInflation: 0.026, BaselineRentBurden: 0.259},
	{Year: 1995, ProductivityIndex: 67.6, WageIndex: 86.4, CPIInflation: 0.028, BaselineRentBurden: 0.259},
	{Year: 1996, ProductivityIndex: 69.5, WageIndex: 87.3, CPIInflation: 0.030, BaselineRentBurden: 0.258},
	{Year: 1997, ProductivityIndex: 71.4, WageIndex: 88.2, CPIInflation: 0.023, BaselineRentBurden: 0.257},
	{Year: 1998, ProductivityIndex: 73.4, WageIndex: 89.1, CPIInflation: 0.016, BaselineRentBurden: 0.256},
	{Year: 1999, ProductivityIndex: 75.4, WageIndex: 90.1, CPIInflation: 0.022, BaselineRentBurden: 0.255},
	{Year: 2000, ProductivityIndex: 77.5, WageIndex: 91.0, CPIInflation: 0.034, BaselineRentBurden: 0.254},
	{Year: 2001, ProductivityIndex: 79.5, WageIndex: 91.5, CPIInflation: 0.028, BaselineRentBurden: 0.261},
	{Year: 2002, ProductivityIndex: 81.7, WageIndex: 91.9, CPIInflation: 0.016, BaselineRentBurden: 0.268},
	{Year: 2003, ProductivityIndex: 83.8, WageIndex: 92.4, CPIInflation: 0.023, BaselineRentBurden: 0.274},
	{Year: 2004, ProductivityIndex: 86.0, WageIndex: 92.8, CPIInflation: 0.027, BaselineRentBurden: 0.281},
	{Year: 2005, ProductivityIndex: 88.3, WageIndex: 93.3, CPIInflation: 0.034, BaselineRentBurden: 0.288},
	{Year: 2006, ProductivityIndex: 89.7, WageIndex: 93.9, CPIInflation: 0.032, BaselineRentBurden: 0.291},
	{Year: 2007, ProductivityIndex: 91.2, WageIndex: 94.5, CPIInflation: 0.028, BaselineRentBurden: 0.294},
	{Year: 2008, ProductivityIndex: 92.6, WageIndex: 95.1, CPIInflation: 0.038, BaselineRentBurden: 0.296},
	{Year: 2009, ProductivityIndex: 94.1, WageIndex: 95.7, CPIInflation: -0.004, BaselineRentBurden: 0.299},
	{Year: 2010, ProductivityIndex: 95.6, WageIndex: 96.3, CPIInflation: 0.016, BaselineRentBurden: 0.302},
	{Year: 2011, ProductivityIndex: 96.2, WageIndex: 96.6, CPIInflation: 0.032, BaselineRentBurden: 0.302},
	{Year: 2012, ProductivityIndex: 96.8, WageIndex: 96.9, CPIInflation: 0.021, BaselineRentBurden: 0.302},
	{Year: 2013, ProductivityIndex: 97.4, WageIndex: 97.3, CPIInflation: 0.015, BaselineRentBurden: 0.301},
	{Year: 2014, ProductivityIndex: 98.0, WageIndex: 97.6, CPIInflation: 0.016, BaselineRentBurden: 0.301},
	{Year: 2015, ProductivityIndex: 98.6, WageIndex: 97.9, CPIInflation: 0.001, BaselineRentBurden: 0.301},
	{Year: 2016, ProductivityIndex: 99.3, WageIndex: 98.9, CPIInflation: 0.013, BaselineRentBurden: 0.300},
	{Year: 2017, ProductivityIndex: 100.0, WageIndex: 100.0, CPIInflation: 0.021, BaselineRentBurden: 0.299},
	{Year: 2018, ProductivityIndex: 101.4, WageIndex: 101.4, CPIInflation: 0.024, BaselineRentBurden: 0.298},
	{Year: 2019, ProductivityIndex: 102.9, WageIndex: 102.8, CPIInflation: 0.018, BaselineRentBurden: 0.297},
	{Year: 2020, ProductivityIndex: 107.5, WageIndex: 106.4, CPIInflation: 0.012, BaselineRentBurden: 0.296},
	{Year: 2021, ProductivityIndex: 109.8, WageIndex: 105.0, CPIInflation: 0.047, BaselineRentBurden: 0.300},
	{Year: 2022, ProductivityIndex: 108.2, WageIndex: 102.6, CPIInflation: 0.080, BaselineRentBurden: 0.304},
	{Year: 2023, ProductivityIndex: 109.9, WageIndex: 103.5, CPIInflation: 0.041, BaselineRentBurden: 0.308},
	{Year: 2024, ProductivityIndex: 112.8, WageIndex: 104.9, CPIInflation: 0.029, BaselineRentBurden: 0.312},
}
