package report

const pageStyle = `
<style>
body { font-family: 'Inter', sans-serif; margin: 2em auto; max-width: 900px; line-height: 1.6; color: #444; background-color: #f9f9fc; }
h1 { color: #2c3e50; font-weight: 700; border-bottom: 3px solid #3498db; padding-bottom: 0.5em; }
h2 { color: #34495e; font-weight: 600; margin-top: 1.5em; border-bottom: 1px solid #ecf0f1; padding-bottom: 0.3em; }
table { width: 100%; border-collapse: collapse; margin-top: 1.5em; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #f8f9fa; color: #555; }
.bias-scorecard { font-size: 1.8em; font-weight: bold; padding: 0.7em 1em; border-radius: 8px; color: white; text-align: center; margin-top: 1em; }
img { max-width: 100%; height: auto; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
</style>
`

const regulatoryAlignment = `
This audit evaluates the AI system against established regulatory and ethical frameworks.

### NYC Automated Employment Decision Tools (AEDT) - Local Law 144

The methodology of this audit aligns with the principles of NYC Local Law 144, which requires a "bias audit" to ensure fairness. By comparing the AI's impact on candidates to that of a biased benchmark, we can identify and address disparities in hiring decisions.

### NIST AI Risk Management Framework (AI RMF)

- **Map:** The audit identifies and categorizes the source of potential bias (e.g., specific educational institutions).
- **Measure:** It uses quantitative metrics to measure the degree of bias, providing a data-driven approach to risk assessment.
- **Manage:** The findings provide the necessary information to manage and mitigate bias risks effectively, ensuring the system operates ethically.

### EEOC Audit Readiness

The audit identifies potential risks that could lead to disparate impact, a key concern for the U.S. Equal Employment Opportunity Commission (EEOC). The findings can be used to document due diligence and support continuous monitoring, helping to ensure compliance and fair hiring practices.
`
